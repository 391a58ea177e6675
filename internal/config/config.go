package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Driver             string `env:"DRIVER" envDefault:"postgres"` // postgres 或 memory
		DSN                string `env:"DSN"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username    string `env:"USERNAME" envDefault:"Admin"`
		Password    string `env:"PASSWORD" envDefault:"Admin"`
		FullName    string `env:"FULL_NAME" envDefault:"Administrator"`
		FirstName   string `env:"FIRST_NAME" envDefault:"Admin"`
		DateOfBirth string `env:"DATE_OF_BIRTH" envDefault:"2000-01-01"`
		Gender      string `env:"GENDER" envDefault:"Other"`
	} `envPrefix:"INITIAL_ADMIN_"`
	Password struct {
		BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
	} `envPrefix:"PASSWORD_"`
	JWT struct {
		Secret string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Session struct {
		Store      string `env:"STORE" envDefault:"redis"`        // redis 或 memory
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 天
		CookieName string `env:"COOKIE_NAME" envDefault:"__job_hub_token"`
	} `envPrefix:"SESSION_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD" envDefault:"jobhub@test"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN" envDefault:"jobhub.local"` // 用户表没有邮箱字段，收件人为 用户名@域名
		SMTP       struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 为空时不发送邮件通知
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		DB               int    `env:"DB" envDefault:"0"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
}

func LoadConfig() (*Config, error) {
	// .env 文件是可选的，不存在时直接读取环境变量
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" {
		return nil, errors.New("使用 postgres 时必须设置 DATABASE_DSN")
	}

	return cfg, nil
}
