package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/formstate"
	"github.com/tbxark/formstate/command"
	"github.com/tbxark/formstate/config"
	"github.com/tbxark/formstate/draft"
	"github.com/tbxark/formstate/fill"
	"github.com/tbxark/formstate/types"
)

func main() {
	conf := flag.String("config", "", "path to a json or yaml form config")
	user := flag.String("user", "local", "draft key")
	drafts := flag.String("drafts", "drafts.db", "bbolt file for unfinished forms")
	flag.Parse()
	modelConf, err := loadModelConfig()
	if err != nil {
		log.Fatalf("load model config: %v", err)
	}
	options := formstate.Options{}
	if *conf != "" {
		file, cErr := config.Load(*conf)
		if cErr != nil {
			log.Fatalf("load config: %v", cErr)
		}
		options = file.Options()
	}
	err = startApp(draft.WithKey(context.Background(), *user), modelConf, options, *drafts)
	if err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, conf *ModelConfig, options formstate.Options, drafts string) error {
	slog.SetLogLoggerLevel(slog.LevelInfo)
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  conf.APIKey,
		Model:   conf.Model,
		BaseURL: conf.BaseURL,
	})
	if err != nil {
		return err
	}
	specs, err := signupSpecs()
	if err != nil {
		return err
	}
	options.OnSubmit = func(ctx context.Context, data types.Values) (any, error) {
		slog.Info("signup submitted", "data", data)
		return data, nil
	}
	form := formstate.New(specs, options)

	cache, err := draft.OpenBoltCache[formstate.State](drafts)
	if err != nil {
		return err
	}
	defer cache.Close()
	store := draft.NewStore(cache, "signup")
	if ok, rErr := store.RestoreForm(ctx, form, formstate.Silent()); rErr != nil {
		return rErr
	} else if ok {
		slog.Info("draft restored")
	}

	filler, err := fill.NewFiller(cm, fill.WithTitle("signup"))
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("欢迎注册，请告诉我您的姓名和邮箱：")
	for {
		fmt.Print("用户: ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("输入错误或已结束。退出。")
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		result, fErr := filler.Fill(ctx, form, input)
		if fErr != nil {
			return fErr
		}
		if result.Submitted || result.Command == command.Cancel {
			if cErr := store.Clear(ctx); cErr != nil {
				return cErr
			}
		} else if sErr := store.SaveForm(ctx, form); sErr != nil {
			return sErr
		}
		fmt.Printf("\n助手: %v\n%s======\n", result.Message, types.FormatItems(form.Items()))
		if result.Submitted {
			break
		}
	}
	return nil
}
