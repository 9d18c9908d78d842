package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Push      PushConfig      `mapstructure:"push"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	RSS       RSSConfig       `mapstructure:"rss"`
}

var AppConfig *Config

// LoadConfig 加载并解析配置文件
func LoadConfig(filepath string) (*Config, error) {
	// 指定配置文件
	viper.SetConfigFile(filepath)

	// 从文件读取配置
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	// 解码到结构体
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"db_name"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// DSN 构造函数
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=Africa/Accra",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type JWTConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PushConfig Web Push (VAPID) 推送配置
type PushConfig struct {
	VAPIDPublicKey  string `mapstructure:"vapid_public_key"`
	VAPIDPrivateKey string `mapstructure:"vapid_private_key"`
	SubscriberEmail string `mapstructure:"subscriber_email"` // mailto: 形式的联系人
	TTL             int    `mapstructure:"ttl"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"` // 单个端点的投递超时
}

// RecommendConfig 兴趣评分权重与推荐流参数
// 权重作为配置项而不是代码常量，便于调整而无需改动评分逻辑
type RecommendConfig struct {
	ViewWeight       float64 `mapstructure:"view_weight"`        // 浏览计 1 分
	LikeWeight       float64 `mapstructure:"like_weight"`        // 点赞计 5 分
	ShareWeight      float64 `mapstructure:"share_weight"`       // 分享计 10 分
	TimeWeight       float64 `mapstructure:"time_weight"`        // 每分钟停留计 2 分
	RecencyBase      float64 `mapstructure:"recency_base"`       // 新鲜度起始分
	RecencyDecay     float64 `mapstructure:"recency_decay"`      // 每天衰减分值
	EngagementFactor float64 `mapstructure:"engagement_factor"`  // view_count 的系数
	TrendingDays     int     `mapstructure:"trending_days"`      // 热门流的时间窗口
	TrendingCacheTTL int     `mapstructure:"trending_cache_ttl"` // 热门流快照的缓存秒数
}

type RSSConfig struct {
	FetchCron string `mapstructure:"fetch_cron"` // RSS抓取的cron表达式
}

// DefaultRecommendConfig 未加载配置文件时（如单元测试）使用的默认权重
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		ViewWeight:       1,
		LikeWeight:       5,
		ShareWeight:      10,
		TimeWeight:       2,
		RecencyBase:      100,
		RecencyDecay:     10,
		EngagementFactor: 0.1,
		TrendingDays:     7,
		TrendingCacheTTL: 300,
	}
}
