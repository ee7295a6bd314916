package config

// EnvPrefix namespaces every environment variable this module reads.
const EnvPrefix = "depotops"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv           = "DEPOTOPS_APP_ENV"
	EnvLogLevel         = "DEPOTOPS_LOG_LEVEL"
	EnvStorePath        = "DEPOTOPS_STORE_PATH"
	EnvStoreDocumentKey = "DEPOTOPS_STORE_DOCUMENT_KEY"
	EnvStoreSessionKey  = "DEPOTOPS_STORE_SESSION_KEY"
	EnvSeedRandSeed     = "DEPOTOPS_SEED_RAND_SEED"
)
