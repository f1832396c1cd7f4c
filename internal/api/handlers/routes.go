package handlers

import "github.com/gofiber/fiber/v2"

type Routes struct {
	Auth      *AuthHandler
	User      *UserHandler
	Settings  *SettingsHandler
	Posts     *PostHandler
	Analytics *AnalyticsHandler
	Calendar  *CalendarHandler
	Assistant *AssistantHandler
	Media     *MediaHandler
}

// Register mounts the login routes at the root and everything else under
// /api behind auth.
func Register(app *fiber.App, auth fiber.Handler, r Routes) {
	if r.Auth != nil {
		app.Get("/login", r.Auth.Login)
		app.Get("/login/callback", r.Auth.LoginCallbackHandler)
		app.Post("/logout", r.Auth.Logout)
	}

	api := app.Group("/api")
	api.Use(auth)

	if r.User != nil {
		api.Get("/user/info", r.User.GetUserInfo)
		api.Delete("/user", r.User.RemoveUser)
	}

	if r.Settings != nil {
		api.Get("/settings", r.Settings.GetSettingsInfo)
		api.Post("/settings", r.Settings.UpdateSettings)
	}

	if r.Posts != nil {
		api.Post("/posts", r.Posts.CreatePost)
		api.Get("/posts", r.Posts.ListPosts)
		api.Get("/posts/stream", r.Posts.StreamPosts)
		api.Get("/posts/:id", r.Posts.GetPost)
		api.Patch("/posts/:id", r.Posts.UpdatePost)
		api.Post("/posts/:id/reschedule", r.Posts.ReschedulePost)
		api.Put("/posts/:id/engagement", r.Posts.UpdateEngagement)
		api.Delete("/posts/:id", r.Posts.RemovePost)
	}

	if r.Analytics != nil {
		api.Get("/analytics/best-times", r.Analytics.BestPostingTimes)
		api.Get("/analytics/posts/:id", r.Analytics.PostPerformance)
	}

	if r.Calendar != nil {
		api.Post("/calendar/generate", r.Calendar.GenerateCalendar)
		api.Get("/calendar/events", r.Calendar.CalendarEvents)
	}

	if r.Assistant != nil {
		api.Post("/ai/suggestions", r.Assistant.Suggestions)
		api.Get("/ai/hashtags", r.Assistant.PopularHashtags)
	}

	if r.Media != nil {
		api.Post("/media", r.Media.UploadMedia)
		api.Delete("/media", r.Media.DeleteMedia)
	}
}
