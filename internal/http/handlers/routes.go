package handlers

import "github.com/gin-gonic/gin"

func (a *API) SetupRoutes(r *gin.Engine) {

	// Public Routes
	r.GET("/healthz", a.Health)
	public := r.Group("/api/auth")
	{
		public.POST("/signup", a.Signup)
		public.POST("/login", a.Login)
	}

	// Protected Routes
	authorized := r.Group("/api")
	authorized.Use(a.guard.Middleware())
	{
		// USERS
		authorized.GET("/users/me", a.GetMe)
		authorized.PUT("/users/me", a.UpdateMe)

		// EVENTS
		authorized.POST("/events", a.CreateEvent)
		authorized.GET("/events", a.ListEvents)
		authorized.GET("/events/:id", a.GetEvent)
		authorized.PUT("/events/:id", a.UpdateEvent)
		authorized.DELETE("/events/:id", a.DeleteEvent)
		authorized.GET("/events/:id/progress", a.EventProgress)

		// DOCUMENTS
		authorized.POST("/events/:id/documents", a.UploadDocument)
		authorized.GET("/events/:id/documents", a.ListDocuments)
		authorized.GET("/events/documents/download/:filename", a.DownloadDocument)

		// TASKS
		authorized.POST("/tasks", a.CreateTask)
		authorized.GET("/tasks", a.ListTasks)
		authorized.GET("/tasks/:id", a.GetTask)
		authorized.PUT("/tasks/:id", a.UpdateTask)
		authorized.PATCH("/tasks/:id/status", a.SetTaskStatus)
		authorized.DELETE("/tasks/:id", a.DeleteTask)

		// SUPPLIERS
		authorized.POST("/suppliers", a.CreateSupplier)
		authorized.GET("/suppliers", a.ListSuppliers)
		authorized.GET("/suppliers/:id", a.GetSupplier)
		authorized.PUT("/suppliers/:id", a.UpdateSupplier)
		authorized.DELETE("/suppliers/:id", a.DeleteSupplier)

		// MESSAGES
		authorized.POST("/messages", a.SendMessage)
		authorized.GET("/messages", a.Inbox)
		authorized.GET("/messages/conversation/:userId", a.Thread)
		authorized.GET("/messages/conversations", a.Conversations)
	}
}
