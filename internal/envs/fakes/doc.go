// Package fakes provides lightweight environments for exercising the
// registry end to end. They expose specs but no dynamics.
//
// Both types are added to a catalog under ModulePath:
//
//	github.com/zjrosen/envreg/internal/envs/fakes:FakeEnvironment
//	github.com/zjrosen/envreg/internal/envs/fakes:FakeMultiAgentEnvironment
package fakes
