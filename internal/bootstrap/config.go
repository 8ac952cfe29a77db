package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	decisionUC "chess_trainer/internal/usecase/decision"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	GrpcPort         string        `mapstructure:"GRPC_PORT"`
	OracleUrl        string        `mapstructure:"ORACLE_URL"`
	OracleTimeout    time.Duration `mapstructure:"ORACLE_TIMEOUT"`
	OracleMultiPV    int           `mapstructure:"ORACLE_MULTIPV"`
	OracleDepth      int           `mapstructure:"ORACLE_DEPTH"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	AnalysisCacheTTL time.Duration `mapstructure:"ANALYSIS_CACHE_TTL"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	PageLimitPuzzles int           `mapstructure:"PAGE_LIMIT_PUZZLES"`
	PuzzleTolerance  int           `mapstructure:"PUZZLE_RATING_TOLERANCE"`

	Policy decisionUC.Policy `mapstructure:",squash"`
}

var defaults = map[string]any{
	"SERVER_PORT":             "8080",
	"GRPC_PORT":               "8082",
	"ORACLE_URL":              "http://localhost:8090/analyse",
	"ORACLE_TIMEOUT":          "10s",
	"ORACLE_MULTIPV":          5,
	"ORACLE_DEPTH":            18,
	"REDIS_URL":               "localhost:6379",
	"ANALYSIS_CACHE_TTL":      "24h",
	"MONGO_URI":               "mongodb://localhost:27017",
	"MONGO_DATABASE":          "chess_trainer",
	"LOCAL_CORS":              false,
	"PAGE_LIMIT_PUZZLES":      10,
	"PUZZLE_RATING_TOLERANCE": 200,
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	policy := decisionUC.DefaultPolicy()
	v.SetDefault("SKILL_DECAY_BASE", policy.Skill.DecayBase)
	v.SetDefault("SKILL_DECAY_STRENGTH", policy.Skill.DecayStrength)
	v.SetDefault("PERSONALITY_TACTICAL_BONUS", policy.Personality.TacticalBonus)
	v.SetDefault("PERSONALITY_QUIET_PENALTY", policy.Personality.QuietPenalty)
	v.SetDefault("PERSONALITY_STYLE_BONUS", policy.Personality.StyleBonus)
	v.SetDefault("PERSONALITY_ATTACK_SWING", float64(policy.Personality.AttackSwingThreshold))
	v.SetDefault("PHASE_OPENING_MAX_MOVE", policy.Phase.OpeningMaxMove)
	v.SetDefault("PHASE_OPENING_MIN_PIECES", policy.Phase.OpeningMinPieces)
	v.SetDefault("PHASE_ENDGAME_MAX_MATERIAL", policy.Phase.EndgameMaxMaterial)
	v.SetDefault("PHASE_QUEENLESS_ENDGAME_MAX_MATERIAL", policy.Phase.QueenlessEndgameMaxMaterial)
	v.SetDefault("ACCURACY_EXCELLENT_MAX_LOSS", float64(policy.Accuracy.Excellent))
	v.SetDefault("ACCURACY_GOOD_MAX_LOSS", float64(policy.Accuracy.Good))
	v.SetDefault("ACCURACY_INACCURACY_MAX_LOSS", float64(policy.Accuracy.Inaccuracy))
	v.SetDefault("ACCURACY_MISTAKE_MAX_LOSS", float64(policy.Accuracy.Mistake))
}

// Setup reads cfgPath (a .env file) on top of the defaults. A missing file is
// not an error; environment variables override both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
