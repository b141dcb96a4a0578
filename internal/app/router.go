package app

import (
	"candypang_backend/internal/config"
	"candypang_backend/internal/middleware"
	"candypang_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerStudentRoutes(router, c)
	a.registerTeacherRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/students", c.student.ListCards)
		public.GET("/board", c.student.GetBoard)
		public.GET("/fever", c.teacher.FeverStatus)
	}
}

// registerStudentRoutes is the per-seat surface. Students identify by
// their seat code in the path; there are no accounts.
func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers) {
	students := router.Group("/api/students/:id")
	{
		students.GET("", c.student.GetStudent)
		students.GET("/events", c.student.GetExpEvents)
		students.GET("/notifications", c.student.GetNotifications)
		students.POST("/notifications/:notificationId/read", c.student.MarkNotificationRead)

		students.GET("/quests", c.quest.ListQuests)
		students.POST("/quests/:questId/request", c.quest.RequestApproval)

		students.GET("/praises", c.praise.ListPraises)
		students.POST("/praises/self", c.praise.CreateSelfPraise)
		students.POST("/praises/friend", c.praise.CreateFriendPraise)

		students.GET("/messages", c.praise.ListMessages)
		students.POST("/messages", c.praise.SendMessage)

		students.GET("/transactions", c.economy.ListTransactions)
		students.GET("/coupons", c.economy.ListCoupons)
		students.POST("/bank/spend", c.economy.Spend)
		students.POST("/coupons/:couponId/redeem", c.economy.RedeemCoupon)
	}
}

// registerTeacherRoutes is the console surface, behind the access gate.
func (a *App) registerTeacherRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	teacher := router.Group("/api/teacher")
	teacher.Use(middleware.AccessGate(cfg.Gate.AccessCodeHash))
	{
		teacher.GET("/pending", c.teacher.ListPending)
		teacher.GET("/stream", c.teacher.StreamChanges)
		teacher.POST("/bulk", c.teacher.ApplyBulk)
		teacher.POST("/fever/start", c.teacher.StartFever)
		teacher.POST("/fever/stop", c.teacher.StopFever)
		teacher.POST("/analysis", c.analysis.Analyze)

		teacher.POST("/students", c.student.CreateStudent)
		teacher.POST("/quests", c.quest.AssignQuest)

		student := teacher.Group("/students/:id")
		{
			student.DELETE("", c.student.DeleteStudent)
			student.POST("/quests/:questId/approve", c.quest.ApproveQuest)
			student.POST("/quests/:questId/fail", c.quest.FailQuest)
			student.POST("/praises/:praiseId/approve", c.praise.ApprovePraise)
			student.POST("/praises/:praiseId/reject", c.praise.RejectPraise)
			student.POST("/praises/:praiseId/read", c.praise.MarkPraiseRead)
			student.POST("/messages/:messageId/read", c.praise.MarkMessageRead)
			student.POST("/bank/deposit", c.economy.Deposit)
			student.POST("/bank/withdraw", c.economy.Withdraw)
			student.POST("/coupons", c.economy.GrantCoupon)
		}
	}
}
