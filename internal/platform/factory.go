package platform

import (
	"errors"

	"github.com/aretw0/pkgrewrite/pkg/adapters/fs"
	"github.com/aretw0/pkgrewrite/pkg/core"
)

// New wires the repository and the rewrite rule into a core.Service.
//
//	svc, err := platform.New(platform.WithWriteMode(fs.WriteInPlace))
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.rule.Name == "" {
		return nil, errors.New("rewrite name cannot be empty")
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Logger:      o.logger,
			WriteMode:   o.writeMode,
			Serializers: o.serializers,
		})
	}

	return core.NewService(repo, o.rule, o.logger), nil
}
