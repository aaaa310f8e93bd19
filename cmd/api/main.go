package main

import (
	"log/slog"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても起動できる
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env not loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "catalog-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Favorite{},
		&model.Cart{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
		&model.Payment{},
	); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)

	//Handler生成
	e := server.New(log)
	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewCategoryHandler(categoryUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewCheckoutHandler(checkoutUC).RegisterRoutes(e, cfg)
	handler.NewFavoriteHandler(favoriteUC).RegisterRoutes(e, cfg)

	//Server起動
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("server starting", "addr", addr)
	if err := server.Start(e, addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
