package mysql

// Hooks for the external test package.
var (
	OpenTestDatastore   = newDatastore
	BuildTestRepository = newRepositoryWithDatastore
)
