package config

import "fmt"

func validate(c *Config) error {
	if c.TargetCount <= 0 {
		return fmt.Errorf("target count must be > 0")
	}
	if c.RequestDelay <= 0 {
		return fmt.Errorf("request delay must be > 0")
	}
	if c.MaxWorkers <= 0 || c.MaxWorkers > DefaultMaxWorkersCap {
		return fmt.Errorf("workers must be between 1 and %d", DefaultMaxWorkersCap)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	return nil
}
