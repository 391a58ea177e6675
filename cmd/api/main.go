package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/handler"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/notify"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository/memory"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/session"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
	var store service.Store
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("正在使用内存存储，进程退出后数据将丢失")
		store = memory.New()
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			logger.Error("无法创建数据库连接池", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("无法连接到数据库", "error", err)
			return
		}

		store = repository.NewRepository(cfg, dbpool)
	default:
		logger.Error("不支持的数据库驱动", "driver", cfg.Database.Driver)
		return
	}

	/**********************************************
	 * 初始化表结构和初始管理员
	 **********************************************/
	hasher := service.BcryptHasher{Cost: cfg.Password.BcryptCost}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	if err := service.Bootstrap(ctx, cfg, store, hasher); err != nil {
		logger.Error("无法初始化数据库", "error", err)
		return
	}

	/**********************************************
	 * 连接 redis
	 **********************************************/
	var sessions session.Store
	switch cfg.Session.Store {
	case "memory":
		sessions = session.NewMemoryStore()
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("无法连接到 redis", "error", err)
			return
		}

		sessions = session.NewRedisStore(rdb, time.Duration(cfg.Redis.OperationTimeout)*time.Second)
	default:
		logger.Error("不支持的会话存储", "store", cfg.Session.Store)
		return
	}

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	var notifier notify.Notifier = notify.Discard{}
	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("无法连接到 rabbitmq", "error", err)
			return
		}
		defer conn.Close()

		// 建立通道
		ch, err := conn.Channel()
		if err != nil {
			logger.Error("无法建立通道", "error", err)
			return
		}
		defer ch.Close()

		if _, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			logger.Error("无法声明队列", "error", err)
			return
		}

		notifier = notify.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	} else {
		logger.Warn("未配置 RABBITMQ_DSN，不会发送邮件通知")
	}

	/**********************************************
	 * 创建 service
	 **********************************************/
	validator, err := service.NewValidator()
	if err != nil {
		logger.Error("无法创建校验器", "error", err)
		return
	}

	identity := service.NewIdentity(cfg, store, sessions, notifier, validator)
	catalog := service.NewCatalog(store, validator)
	applications := service.NewApplications(store, catalog, identity, notifier, validator)

	/**********************************************
	 * 创建 handler
	 **********************************************/
	handler := handler.NewHandler(cfg, identity, catalog, applications)
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("正在启动服务器...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}
