package utils

import "carenest/config"

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return config.IsProduction()
}
