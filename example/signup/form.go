package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tbxark/formstate/manager"
	"github.com/tbxark/formstate/types"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var signupItems = manager.New(map[string]types.Spec{
	"name": {
		Key:   "name",
		Label: "姓名",
		Value: "",
		Formatter: func(value any, _ types.Values) any {
			s, _ := value.(string)
			return strings.TrimSpace(s)
		},
	},
	"email": {
		Key:   "email",
		Label: "邮箱",
		Value: "",
		Validator: func(value any, _ types.Values) string {
			if s, _ := value.(string); !emailPattern.MatchString(s) {
				return "邮箱格式错误"
			}
			return ""
		},
		Extra: types.Values{"description": "used to send the confirmation mail"},
	},
	"company": {
		Key:      "company",
		Label:    "公司",
		Value:    "",
		Required: new(bool),
	},
	"seats": {
		Key:   "seats",
		Label: "席位数",
		Value: float64(1),
		Validator: func(value any, _ types.Values) string {
			n, ok := value.(float64)
			if !ok || n < 1 || n != float64(int(n)) {
				return "席位数必须是正整数"
			}
			return ""
		},
		CalcRequired: func(ctx types.Values) bool {
			company, _ := ctx["company"].(string)
			return company != ""
		},
	},
})

func signupSpecs() ([]types.Spec, error) {
	specs, err := signupItems.GetItems("name", "email", "company", "seats")
	if err != nil {
		return nil, fmt.Errorf("load signup items: %w", err)
	}
	return specs, nil
}
