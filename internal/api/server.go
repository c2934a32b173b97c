package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campbase/campbase-api/docs"
	v1 "github.com/campbase/campbase-api/internal/api/handler/v1"
	"github.com/campbase/campbase-api/internal/api/middleware"
	"github.com/campbase/campbase-api/internal/config"
	"github.com/campbase/campbase-api/internal/repository"
	"github.com/campbase/campbase-api/internal/repository/dao"
	"github.com/campbase/campbase-api/internal/scan"
	"github.com/campbase/campbase-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	camperHandler := s.initCamperHandler(db)
	roomHandler := s.initRoomHandler(db)
	foodHandler, foodSvc := s.initFoodHandler(db)
	scanHandler := s.initScanHandler(db, foodSvc)
	s.MountHandlers(camperHandler, roomHandler, foodHandler, scanHandler)

	return s
}

func (s *Server) initCamperHandler(db *gorm.DB) *v1.CamperHandler {
	camperDAO := dao.NewCamperDAO(db)
	repo := repository.NewCamperRepository(camperDAO)
	svc := service.NewCamperService(repo)
	handler := v1.NewCamperHandler(svc)

	return handler
}

func (s *Server) initRoomHandler(db *gorm.DB) *v1.RoomHandler {
	roomDAO := dao.NewRoomDAO(db)
	repo := repository.NewRoomRepository(roomDAO)
	camperRepo := repository.NewCamperRepository(dao.NewCamperDAO(db))
	svc := service.NewAllocationService(repo, camperRepo)
	handler := v1.NewRoomHandler(svc)

	return handler
}

func (s *Server) initFoodHandler(db *gorm.DB) (*v1.FoodHandler, *service.FoodService) {
	foodDAO := dao.NewFoodDAO(db)
	repo := repository.NewFoodRepository(foodDAO)
	camperRepo := repository.NewCamperRepository(dao.NewCamperDAO(db))
	svc := service.NewFoodService(repo, camperRepo)
	handler := v1.NewFoodHandler(svc)

	return handler, svc
}

func (s *Server) initScanHandler(db *gorm.DB, foodSvc *service.FoodService) *v1.ScanHandler {
	camperRepo := repository.NewCamperRepository(dao.NewCamperDAO(db))
	svc := service.NewScanService(scan.NewSessionManager(), foodSvc, camperRepo)
	handler := v1.NewScanHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(camperHandler *v1.CamperHandler, roomHandler *v1.RoomHandler, foodHandler *v1.FoodHandler, scanHandler *v1.ScanHandler) {
	const basePath = "/api/v1"

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.POST("/camps/:campID/campers", camperHandler.HandleRegisterCamper)
		authed.GET("/camps/:campID/campers/:camperCode", camperHandler.HandleGetCamperByCode)
		authed.PATCH("/campers/:camperID/check-in", camperHandler.HandleCheckIn)

		authed.GET("/camps/:campID/rooms", roomHandler.HandleListAvailableRooms)
		authed.POST("/camps/:campID/rooms", roomHandler.HandleCreateRoom)
		authed.PATCH("/rooms/:roomID/damaged", roomHandler.HandleSetRoomDamaged)
		authed.POST("/rooms/:roomID/allocations", roomHandler.HandleAllocateRoom)
		authed.GET("/rooms/:roomID/allocations", roomHandler.HandleListRoomAllocations)
		authed.DELETE("/room-allocations/:allocationID", roomHandler.HandleDeallocateRoom)
		authed.PATCH("/room-allocations/:allocationID", roomHandler.HandleUpdateRoomAllocation)

		authed.GET("/camps/:campID/food-batches", foodHandler.HandleListAvailableBatches)
		authed.POST("/camps/:campID/food-batches", foodHandler.HandleCreateBatch)
		authed.POST("/food-batches/:batchID/allocations", foodHandler.HandleAllocateFood)
		authed.POST("/food-batches/:batchID/allocations/bulk", foodHandler.HandleBulkAllocateFood)

		authed.POST("/scan-sessions", scanHandler.HandleCreateSession)
		authed.POST("/scan-sessions/:sessionID/resume", scanHandler.HandleResumeSession)
		authed.POST("/food-batches/:batchID/scan", scanHandler.HandleIngestScan)
		authed.POST("/food-batches/:batchID/scan/manual", scanHandler.HandleManualAllocate)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Campbase API"
	docs.SwaggerInfo.Description = "Camp resource allocation: rooms, food batches and QR scan ingestion."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
