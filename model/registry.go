package model

import "fmt"

// Strategy names accepted by NewTrainer.
const (
	StrategyMajorClass = "majorclass"
	StrategyRandom     = "random"
	StrategySVM        = "svm"
	StrategyLogReg     = "logreg"
	StrategyCNN        = "cnn"
)

// TrainerConfig carries the hyper-parameters of every strategy.
type TrainerConfig struct {
	Seed   uint64
	SVM    SVMConfig
	LogReg LogRegConfig
}

// NewTrainer returns the trainer registered under name.
func NewTrainer(name string, cfg TrainerConfig) (Trainer, error) {
	switch name {
	case StrategyMajorClass:
		return MajorClassTrainer{}, nil
	case StrategyRandom:
		return RandomTrainer{Seed: cfg.Seed}, nil
	case StrategySVM:
		svm := cfg.SVM
		if svm.Seed == 0 {
			svm.Seed = cfg.Seed
		}
		return SVMTrainer{Config: svm}, nil
	case StrategyLogReg:
		return LogRegTrainer{Config: cfg.LogReg}, nil
	case StrategyCNN:
		return nil, fmt.Errorf("%w: %s is not built into this binary", ErrUnsupportedStrategy, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
	}
}
