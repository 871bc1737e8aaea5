package di

import (
	"github.com/samber/do/v2"

	"github.com/omarluq/bundlecfg/internal/descriptor"
	"github.com/omarluq/bundlecfg/internal/environ"
)

// DescriptorService builds descriptors for the current environment.
type DescriptorService struct {
	env     environ.View
	Builder *descriptor.Builder
}

// NewDescriptor creates the descriptor service.
func NewDescriptor(i do.Injector) (*DescriptorService, error) {
	cfgSvc, err := do.Invoke[*ConfigService](i)
	if err != nil {
		return nil, err
	}
	logSvc, err := do.Invoke[*LoggerService](i)
	if err != nil {
		return nil, err
	}
	envSvc := do.MustInvoke[*EnvService](i)

	return &DescriptorService{
		env:     envSvc.View,
		Builder: descriptor.NewBuilder(cfgSvc.Config, logSvc.Logger),
	}, nil
}

// Build assembles the descriptor.
func (s *DescriptorService) Build() (*descriptor.Descriptor, error) {
	return s.Builder.Build(s.env)
}
