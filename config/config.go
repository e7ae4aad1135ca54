package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Endpoint  string // 可选，用于兼容 MinIO 等其他 S3 服务
}

type Config struct {
	ServerPort string
	JWTSecret  string
	DBPath     string
	DataDir    string
	S3         S3Config
}

var config *Config

// GetConfig 获取配置
func GetConfig() *Config {
	if config == nil {
		// .env 不存在时忽略错误，直接读环境变量
		_ = godotenv.Load()

		config = &Config{
			ServerPort: getEnv("SERVER_PORT", "3000"),
			JWTSecret:  getEnv("JWT_SECRET", "study_system_secret_key_2024"),
			// 使用绝对路径，方便 Docker 挂载
			DBPath:  getEnv("DB_PATH", "/app/data/study.db"),
			DataDir: getEnv("DATA_DIR", "/app/data/users_data"),
			S3: S3Config{
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Region:    getEnv("S3_REGION", "us-east-1"),
				Bucket:    getEnv("S3_BUCKET", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
			},
		}

		log.Printf("Config loaded - ServerPort: %s, DBPath: %s, DataDir: %s",
			config.ServerPort, config.DBPath, config.DataDir)
	}
	return config
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
