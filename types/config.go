package types

type Config struct {
	Environment string
	APIAddr     string
	Database    *DatabaseParams
}

// DatabaseParams is read once at process start and passed explicitly to the
// pool constructor; there is no package-level database handle.
type DatabaseParams struct {
	User            string
	Pass            string
	Host            string
	Port            string
	Name            string
	ApplicationName string
	MaxConns        int32
}
