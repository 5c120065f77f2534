package formstate

import (
	"context"
	"log/slog"
	"maps"

	"github.com/tbxark/formstate/types"
)

const DefaultEmptyErrorTemplate = "{label} is required"

type (
	// SubmitFunc receives the live data object of the form.
	SubmitFunc func(ctx context.Context, data types.Values) (any, error)
	// UpdateFunc asks the host to re-render. It must not call back into the form.
	UpdateFunc func()
)

// Options configures a Form. Nil fields are "not set": UpdateOptions keeps
// the previous value for them, so false and "" can be set explicitly.
// InitialValues and Extra are merged key by key.
type Options struct {
	InitialValues types.Values
	// ValidateAll is the default for FormValidate and Submit.
	ValidateAll *bool
	// ValidateOnChange is the default for items without their own setting.
	ValidateOnChange *bool
	// EmptyErrorTemplate may contain {label}.
	EmptyErrorTemplate *string
	// Extra is merged over the form data and handed to validators,
	// formatters and CalcRequired.
	Extra    types.Values
	OnSubmit SubmitFunc
	OnUpdate UpdateFunc
	Logger   *slog.Logger
}

func Bool(b bool) *bool { return &b }

func String(s string) *string { return &s }

type settings struct {
	initialValues      types.Values
	validateAll        bool
	validateOnChange   bool
	emptyErrorTemplate string
	extra              types.Values
	onSubmit           SubmitFunc
	onUpdate           UpdateFunc
	logger             *slog.Logger
}

func defaultSettings() settings {
	return settings{
		initialValues:      types.Values{},
		emptyErrorTemplate: DefaultEmptyErrorTemplate,
		extra:              types.Values{},
		onSubmit:           submitData,
	}
}

func submitData(_ context.Context, data types.Values) (any, error) {
	return data, nil
}

func (s *settings) merge(o Options) {
	maps.Copy(s.initialValues, o.InitialValues)
	maps.Copy(s.extra, o.Extra)
	if o.ValidateAll != nil {
		s.validateAll = *o.ValidateAll
	}
	if o.ValidateOnChange != nil {
		s.validateOnChange = *o.ValidateOnChange
	}
	if o.EmptyErrorTemplate != nil {
		s.emptyErrorTemplate = *o.EmptyErrorTemplate
	}
	if o.OnSubmit != nil {
		s.onSubmit = o.OnSubmit
	}
	if o.OnUpdate != nil {
		s.onUpdate = o.OnUpdate
	}
	if o.Logger != nil {
		s.logger = o.Logger
	}
}

func (s *settings) items() types.Settings {
	return types.Settings{
		ValidateOnChange:   s.validateOnChange,
		EmptyErrorTemplate: s.emptyErrorTemplate,
		Extra:              s.extra,
	}
}

func (s *settings) options() Options {
	return Options{
		InitialValues:      s.initialValues.Clone(),
		ValidateAll:        Bool(s.validateAll),
		ValidateOnChange:   Bool(s.validateOnChange),
		EmptyErrorTemplate: String(s.emptyErrorTemplate),
		Extra:              s.extra.Clone(),
		OnSubmit:           s.onSubmit,
		OnUpdate:           s.onUpdate,
		Logger:             s.logger,
	}
}

// CallOption tunes a single Form method call.
type CallOption func(*callOptions)

type callOptions struct {
	silent      bool
	forceDirty  bool
	validateAll *bool
}

// Silent suppresses the OnUpdate notification for the call.
func Silent() CallOption {
	return func(o *callOptions) { o.silent = true }
}

// ForceDirty marks the item non-pristine before ItemValidate runs.
func ForceDirty() CallOption {
	return func(o *callOptions) { o.forceDirty = true }
}

// ValidateAll overrides Options.ValidateAll for one FormValidate call.
func ValidateAll(all bool) CallOption {
	return func(o *callOptions) { o.validateAll = &all }
}

func newCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
