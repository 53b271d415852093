package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	GitHub    GitHubConfig
	Session   SessionConfig
	Estimator EstimatorConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type GitHubConfig struct {
	// Token is the process-wide default token used when a request carries
	// no session of its own. Per-user tokens resolved from the session
	// cookie override it.
	Token      string
	APIURL     string
	GraphQLURL string
}

type SessionConfig struct {
	Secret string
}

// EstimatorConfig holds the tuning constants of the commit estimation
// cascade. These are empirical values with no documented derivation,
// which is why they are overridable instead of inlined.
type EstimatorConfig struct {
	// CommitsPerRepoYear is the assumed average commits per repository
	// per year used by the arithmetic fallback estimate.
	CommitsPerRepoYear int
	// InitialCommitBonus compensates for the commit history endpoint
	// omitting the root commit of a repository.
	InitialCommitBonus int
	RepoBatchSize      int
	BatchDelayMS       int
	RequestDelayMS     int
	MaxRetries         int
	RetryBaseDelayMS   int
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 60),
		},
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			APIURL:     getEnv("GITHUB_API_URL", "https://api.github.com/"),
			GraphQLURL: getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "default-secret-key"),
		},
		Estimator: EstimatorConfig{
			CommitsPerRepoYear: getEnvAsInt("ESTIMATOR_COMMITS_PER_REPO_YEAR", 10),
			InitialCommitBonus: getEnvAsInt("ESTIMATOR_INITIAL_COMMIT_BONUS", 1),
			RepoBatchSize:      getEnvAsInt("ESTIMATOR_REPO_BATCH_SIZE", 5),
			BatchDelayMS:       getEnvAsInt("ESTIMATOR_BATCH_DELAY_MS", 300),
			RequestDelayMS:     getEnvAsInt("ESTIMATOR_REQUEST_DELAY_MS", 200),
			MaxRetries:         getEnvAsInt("SNAPSHOT_MAX_RETRIES", 3),
			RetryBaseDelayMS:   getEnvAsInt("SNAPSHOT_RETRY_BASE_DELAY_MS", 500),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
