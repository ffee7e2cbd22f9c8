package util

import (
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by the cli
	EnvPrefix = "socialkv"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes viper read SOCIALKV_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupWorkloadFlags adds the flags of common.WorkloadConfig to a command
func SetupWorkloadFlags(cmd *cobra.Command) {
	def := common.DefaultWorkloadConfig()

	key := "users"
	cmd.Flags().Int(key, def.Users, WrapString("Number of users created before the workload starts"))

	key = "posts-per-user"
	cmd.Flags().Int(key, def.PostsPerUser, WrapString("Number of posts every seeded user creates"))

	key = "follows-per-user"
	cmd.Flags().Int(key, def.FollowsPerUser, WrapString("Number of distinct users every seeded user follows (must be smaller than users)"))

	key = "workers"
	cmd.Flags().Int(key, def.Workers, WrapString("Number of goroutines issuing operations concurrently"))

	key = "operations"
	cmd.Flags().Int(key, def.Operations, WrapString("Total number of operations of the mixed workload"))

	key = "feed-limit"
	cmd.Flags().Int(key, def.FeedLimit, WrapString("Limit passed to every feed request"))

	key = "mix"
	cmd.Flags().String(key, "", WrapString("Comma-separated list of NAME=WEIGHT pairs overriding the default operation mix (e.g. get-post=50,like=0). Names: create-post, get-post, feed, comment, like, unlike, follow, unfollow, update-user"))

	key = "seed"
	cmd.Flags().Int64(key, 0, WrapString("Seed for the random generators (0 derives it from the clock)"))
}

// GetWorkloadConfig reads the workload configuration from viper and validates it
func GetWorkloadConfig() (common.WorkloadConfig, error) {
	conf := common.DefaultWorkloadConfig()

	conf.Users = viper.GetInt("users")
	conf.PostsPerUser = viper.GetInt("posts-per-user")
	conf.FollowsPerUser = viper.GetInt("follows-per-user")
	conf.Workers = viper.GetInt("workers")
	conf.Operations = viper.GetInt("operations")
	conf.FeedLimit = viper.GetInt("feed-limit")
	conf.Seed = viper.GetInt64("seed")
	if level := viper.GetString("log-level"); level != "" {
		conf.LogLevel = level
	}

	mix, err := common.ParseOperationMix(viper.GetString("mix"), conf.Mix)
	if err != nil {
		return conf, err
	}
	conf.Mix = mix

	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}
