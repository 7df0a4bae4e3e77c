package app

import (
	"time"

	"flake-freshness/internal/adapters"
	"flake-freshness/internal/ports"
)

type Service struct {
	Config    ports.ConfigSourcePort
	Metadata  ports.FlakeMetadataPort
	Evaluator ports.EvaluatorPort
	Cache     ports.VersionCachePort
	Clock     func() time.Time

	// Progress receives human-readable status lines while the check
	// runs; nil disables them.
	Progress func(message string)
}

func NewService() Service {
	return Service{
		Config:    adapters.NewConfigFileAdapter(),
		Metadata:  adapters.NewNixMetadataAdapter(),
		Evaluator: adapters.NewNixEvalAdapter(),
		Cache:     adapters.NewFileCacheAdapter(),
		Clock:     time.Now,
	}
}

func (s Service) progress(message string) {
	if s.Progress != nil {
		s.Progress(message)
	}
}
