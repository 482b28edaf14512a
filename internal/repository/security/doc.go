// Package security implements persistence for sensors, alarm status and
// arming status.
//
// The Repository interface is what the security service depends on. Three
// implementations are provided: MemoryRepository for tests and ephemeral runs,
// FileRepository storing a JSON document on disk, and RedisRepository for
// deployments that share state between processes.
package security
