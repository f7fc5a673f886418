package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/config"
	"terminal-terrace/knowledge-base/internal/model"
	"terminal-terrace/knowledge-base/pkg/database"
)

var (
	PostgresDB *gorm.DB
	Cache      *database.RedisClient
)

func InitDatabase() {
	initPostgres()
	initRedis()
}

func initPostgres() {
	databaseConf := config.Conf.Database

	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     "knowledge-base",
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)
	if err != nil {
		panic(err)
	}

	// 初始化数据库表
	if err = model.InitTable(PostgresDB); err != nil {
		panic(err)
	}
}

// initRedis 初始化 Redis（可选）
// 未启用或连接失败时 Cache 为 nil，搜索建议缓存自动降级为直查
func initRedis() {
	redisConf := config.Conf.Redis
	if !redisConf.Enabled {
		return
	}

	var err error
	Cache, err = database.InitRedis(&database.RedisConfig{
		ServiceName: "knowledge-base",
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	})
	if err != nil {
		log.Printf("警告: Redis 初始化失败，建议缓存已禁用: %v", err)
		Cache = nil
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}

// GetCache 获取 Redis 实例，可能为 nil
func GetCache() *database.RedisClient {
	return Cache
}
