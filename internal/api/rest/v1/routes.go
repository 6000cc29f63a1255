package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
)

// SetupRoutes sets up all the API routes for version 1. Login and the Atom
// feeds are public; everything else requires a bearer token.
func SetupRoutes(r *gin.Engine,
	userService users.UserService,
	tokenService users.TokenService,
	permissionChecker users.PermissionChecker,
	topicService topics.TopicService,
	sampleService samples.SampleService,
	mySamplesService samples.MySamplesService,
	depositionService processes.DepositionService,
	processService processes.ProcessService,
	statusService status.StatusService,
	feedService feeds.FeedService) {

	v1 := r.Group(BasePath) // lookup in version file

	userHandler := NewUserHandler(userService, tokenService, permissionChecker)
	sampleHandler := NewSampleHandler(sampleService, mySamplesService, processService)
	depositionHandler := NewDepositionHandler(depositionService)
	topicHandler := NewTopicHandler(topicService)
	statusHandler := NewStatusHandler(statusService)
	feedHandler := NewFeedHandler(feedService)

	// Public Routes
	v1.POST("/login", userHandler.Login)
	v1.GET("/feeds/:login/:token", feedHandler.Atom)

	protected := v1.Group("")
	protected.Use(BearerAuth(tokenService))

	// Users Routes
	protected.POST("/users", userHandler.Register)
	protected.GET("/users", userHandler.List)
	protected.GET("/users/:login", userHandler.GetByLogin)
	protected.POST("/permissions", userHandler.GrantPermission)
	protected.DELETE("/permissions", userHandler.RevokePermission)

	// Topics Routes
	protected.POST("/topics", topicHandler.Create)
	protected.GET("/topics", topicHandler.List)
	protected.GET("/topics/:name", topicHandler.GetByName)
	protected.POST("/topics/:name/members", topicHandler.AddMember)
	protected.DELETE("/topics/:name/members/:userId", topicHandler.RemoveMember)

	// Samples Routes
	protected.POST("/samples", sampleHandler.Create)
	protected.GET("/samples", sampleHandler.List)
	protected.GET("/samples/:name", sampleHandler.GetByName)
	protected.PUT("/samples/:name", sampleHandler.Update)
	protected.POST("/samples/:name/rename", sampleHandler.Rename)
	protected.POST("/samples/:name/split", sampleHandler.Split)
	protected.DELETE("/samples/:name", sampleHandler.DeleteByName)
	protected.GET("/samples/:name/processes", sampleHandler.ListProcesses)
	protected.GET("/my-samples", sampleHandler.ListMySamples)
	protected.PUT("/my-samples", sampleHandler.UpdateMySamples)

	// Processes and Depositions Routes
	protected.POST("/processes", sampleHandler.CreateProcess)
	protected.POST("/depositions", depositionHandler.Create)
	protected.GET("/depositions", depositionHandler.List)
	protected.GET("/depositions/:number", depositionHandler.GetByNumber)
	protected.PUT("/depositions/:number", depositionHandler.Update)

	// Status Routes
	protected.POST("/status", statusHandler.Add)
	protected.GET("/status", statusHandler.ListCurrent)
	protected.DELETE("/status/:id", statusHandler.Withdraw)

	// Feed Routes
	protected.GET("/feed", feedHandler.ListEntries)
}
