package di

import "github.com/samber/do/v2"

// RegisterSingletons registers all service providers as singletons.
// Services are registered in dependency order:
// 1. Env (base view, env files)
// 2. Config (depends on Env)
// 3. Logger (depends on Config)
// 4. Records (depends on Config, Env, Logger)
// 5. Descriptor (depends on Config, Env, Logger).
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewEnv)
	do.Provide(i, NewConfig)
	do.Provide(i, NewLogger)
	do.Provide(i, NewRecords)
	do.Provide(i, NewDescriptor)
}
