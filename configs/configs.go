package configs

import "github.com/spf13/viper"

type Conf struct {
	Env           string `mapstructure:"APP_ENV"`
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	WebServerPort string `mapstructure:"WEB_SERVER_PORT"`
	AMQPort       string `mapstructure:"AMQ_PORT"`
	OtelCollector string `mapstructure:"OTEL_COLLECTOR_ADDR"`

	// Proximity engine tuning
	GeoFilterRadiusMeters    float64 `mapstructure:"GEO_FILTER_RADIUS_METERS"`
	MovementThresholdMeters  float64 `mapstructure:"MOVEMENT_THRESHOLD_METERS"`
	TimeThresholdMs          int64   `mapstructure:"TIME_THRESHOLD_MS"`
	DistanceToleranceMeters  float64 `mapstructure:"DISTANCE_TOLERANCE_METERS"`
	ScoreTolerance           float64 `mapstructure:"SCORE_TOLERANCE"`
	MaxTrackedFriends        int     `mapstructure:"MAX_TRACKED_FRIENDS"`
	ProximityWeight          float64 `mapstructure:"PROXIMITY_WEIGHT"`
	RecencyWeight            float64 `mapstructure:"RECENCY_WEIGHT"`
	StatusWeight             float64 `mapstructure:"STATUS_WEIGHT"`
	RecencyWindowMs          int64   `mapstructure:"RECENCY_WINDOW_MS"`
	RosterRefreshIntervalSec int     `mapstructure:"ROSTER_REFRESH_INTERVAL_SEC"`
}

func LoadConfig(path string) (*Conf, error) {
	var cfg *Conf

	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("GEO_FILTER_RADIUS_METERS", 10000.0)
	viper.SetDefault("MOVEMENT_THRESHOLD_METERS", 20.0)
	viper.SetDefault("TIME_THRESHOLD_MS", 10000)
	viper.SetDefault("DISTANCE_TOLERANCE_METERS", 1.0)
	viper.SetDefault("SCORE_TOLERANCE", 0.01)
	viper.SetDefault("MAX_TRACKED_FRIENDS", 1000)
	viper.SetDefault("PROXIMITY_WEIGHT", 0.5)
	viper.SetDefault("RECENCY_WEIGHT", 0.3)
	viper.SetDefault("STATUS_WEIGHT", 0.2)
	viper.SetDefault("RECENCY_WINDOW_MS", 3600000)
	viper.SetDefault("ROSTER_REFRESH_INTERVAL_SEC", 30)

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
