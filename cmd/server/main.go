package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/playerbridge/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	pageScheme = configVar[string]{
		envKey:       "SERVER_PAGE_SCHEME",
		flagKey:      "page-scheme",
		defaultValue: "https",
	}
	readyTimeout = configVar[time.Duration]{
		envKey:       "SERVER_READY_TIMEOUT",
		flagKey:      "ready-timeout",
		defaultValue: 0,
	}
	commandTimeout = configVar[time.Duration]{
		envKey:       "SERVER_COMMAND_TIMEOUT",
		flagKey:      "command-timeout",
		defaultValue: 10 * time.Second,
	}
	callTimeout = configVar[time.Duration]{
		envKey:       "SERVER_CALL_TIMEOUT",
		flagKey:      "call-timeout",
		defaultValue: 5 * time.Second,
	}
	snapshotTTL = configVar[time.Duration]{
		envKey:       "SERVER_SNAPSHOT_TTL",
		flagKey:      "snapshot-ttl",
		defaultValue: 24 * time.Hour,
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(pageScheme.flagKey, pageScheme.defaultValue, "Scheme of the pages embedding players, selects the iframe api url")
	pflag.Duration(readyTimeout.flagKey, readyTimeout.defaultValue, "How long a player may take to become ready, 0 waits forever")
	pflag.Duration(commandTimeout.flagKey, commandTimeout.defaultValue, "Upper bound for a single player command")
	pflag.Duration(callTimeout.flagKey, callTimeout.defaultValue, "How long to wait for a host to answer a call")
	pflag.Duration(snapshotTTL.flagKey, snapshotTTL.defaultValue, "Lifetime of a stored player snapshot")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(pageScheme.flagKey, pageScheme.envKey)
	viper.BindEnv(readyTimeout.flagKey, readyTimeout.envKey)
	viper.BindEnv(commandTimeout.flagKey, commandTimeout.envKey)
	viper.BindEnv(callTimeout.flagKey, callTimeout.envKey)
	viper.BindEnv(snapshotTTL.flagKey, snapshotTTL.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(pageScheme.flagKey, pageScheme.defaultValue)
	viper.SetDefault(readyTimeout.flagKey, readyTimeout.defaultValue)
	viper.SetDefault(commandTimeout.flagKey, commandTimeout.defaultValue)
	viper.SetDefault(callTimeout.flagKey, callTimeout.defaultValue)
	viper.SetDefault(snapshotTTL.flagKey, snapshotTTL.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	config := &app.AppConfig{
		Port:           viper.GetInt(port.flagKey),
		Host:           viper.GetString(host.flagKey),
		LogLevel:       viper.GetString(logLevel.flagKey),
		PageScheme:     viper.GetString(pageScheme.flagKey),
		ReadyTimeout:   viper.GetDuration(readyTimeout.flagKey),
		CommandTimeout: viper.GetDuration(commandTimeout.flagKey),
		CallTimeout:    viper.GetDuration(callTimeout.flagKey),
		SnapshotTTL:    viper.GetDuration(snapshotTTL.flagKey),
		RedisPort:      viper.GetInt(redisPort.flagKey),
		RedisHost:      viper.GetString(redisHost.flagKey),
		RedisPassword:  viper.GetString(redisPassword.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
