package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机求职者, 2: 插入随机职位, 3: 为求职者插入随机申请)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.Driver != "postgres" {
		logger.Error("seed 只支持 postgres", slog.String("driver", cfg.Database.Driver))
		os.Exit(1)
	}

	// 创建数据库连接池
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

	// 创建 repository 并确保表结构存在
	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Error("无法创建表结构", "error", err)
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的求职者数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Password.BcryptCost)
				if err != nil {
					slog.Error("无法生成随机求职者", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(context.Background(), user); err != nil {
					// 随机用户名可能重复，跳过即可
					slog.Error("无法插入求职者", slog.String("username", user.Username), slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入求职者成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的职位数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				job := utils.GenerateRandomJob()
				if err := repo.CreateJob(context.Background(), job); err != nil {
					slog.Error("无法插入职位", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入职位成功", slog.Int("count", n-cnt))
		}
	case 3:
		jobs, err := repo.GetAllJobs(context.Background())
		if err != nil {
			slog.Error("无法获取所有职位", slog.String("error", err.Error()))
			return
		}
		if len(jobs) == 0 {
			slog.Error("数据库中没有职位，请先插入职位")
			return
		}

		users, err := repo.GetAllUsers(context.Background())
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}

		jobIDs := make([]int64, len(jobs))
		for i, job := range jobs {
			jobIDs[i] = job.ID
		}

		// 每个求职者随机申请若干职位，并随机给出处理结果
		cnt := 0
		for _, user := range users {
			if user.IsAdmin {
				continue
			}

			for _, jobID := range utils.GenerateRandomSubset(jobIDs) {
				app := &domain.Application{JobID: jobID, UserID: user.ID}
				if err := repo.CreateApplication(context.Background(), app); err != nil {
					if !errors.Is(err, repository.ErrDuplicateApplication) {
						slog.Error("无法插入申请", slog.String("error", err.Error()))
					}
					continue
				}

				if status := utils.GenerateRandomStatus(); status != app.Status {
					if _, err := repo.UpdateApplicationStatus(context.Background(), app.ID, status); err != nil {
						slog.Error("无法更新申请状态", slog.String("error", err.Error()))
					}
				}

				cnt++
			}
		}

		slog.Info("插入申请成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
