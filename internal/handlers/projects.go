package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"freelancehub/internal/flash"
	"freelancehub/internal/models"
)

type ProjectHandler struct {
	DB    *gorm.DB
	Flash flash.Store
}

func NewProjectHandler(db *gorm.DB, fl flash.Store) *ProjectHandler {
	return &ProjectHandler{DB: db, Flash: fl}
}

func projectOut(p models.Project) fiber.Map {
	out := fiber.Map{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"budget":      p.Budget,
		"user_id":     p.UserID,
		"created_at":  p.CreatedAt,
	}
	if p.User != nil {
		out["poster"] = fiber.Map{
			"id":            p.User.ID,
			"username":      p.User.Username,
			"is_freelancer": p.User.IsFreelancer,
		}
	}
	return out
}

// Home lists every project on the platform, newest first.
func (h *ProjectHandler) Home(c *fiber.Ctx) error {
	var projects []models.Project
	if err := h.DB.
		Preload("User").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {

		return fiber.ErrInternalServerError
	}

	out := make([]fiber.Map, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectOut(p))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"notices": popFlash(c, h.Flash),
	})
}

// Dashboard lists the projects posted by the current user.
func (h *ProjectHandler) Dashboard(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var projects []models.Project
	if err := h.DB.
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {

		return fiber.ErrInternalServerError
	}

	out := make([]fiber.Map, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectOut(p))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"notices": popFlash(c, h.Flash),
	})
}

type PostProjectReq struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	// Taken as a raw string so a non-numeric budget gets a field error
	// instead of dying in the storage layer.
	Budget string `json:"budget" form:"budget"`
}

func (h *ProjectHandler) PostProjectPage(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return fiber.ErrUnauthorized
	}
	return c.JSON(fiber.Map{
		"success": true,
		"notices": popFlash(c, h.Flash),
	})
}

func (h *ProjectHandler) PostProject(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req PostProjectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	errors := FieldErrors{}
	if title == "" {
		errors.Add("title", "Title is required")
	}
	if description == "" {
		errors.Add("description", "Description is required")
	}

	budget := 0
	if strings.TrimSpace(req.Budget) == "" {
		errors.Add("budget", "Budget is required")
	} else if budget, err = strconv.Atoi(strings.TrimSpace(req.Budget)); err != nil {
		errors.Add("budget", "Budget must be a whole number")
	} else if budget < 0 {
		errors.Add("budget", "Budget cannot be negative")
	}

	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	project := models.Project{
		Title:       title,
		Description: description,
		Budget:      budget,
		UserID:      uid,
	}

	if err := h.DB.Create(&project).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	pushFlash(c, h.Flash, "success", "Project published!")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Project published!",
		"redirect": "/dashboard",
		"data":     projectOut(project),
	})
}

// Search filters projects by a keyword over title/description plus optional
// budget bounds. Matching is case-insensitive; the keyword is a plain
// substring, not a pattern.
func (h *ProjectHandler) Search(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("keyword"))

	errors := FieldErrors{}
	q := h.DB.Model(&models.Project{}).Preload("User")

	kw := "%" + strings.ToLower(keyword) + "%"
	q = q.Where(
		h.DB.Where("LOWER(title) LIKE ?", kw).Or("LOWER(description) LIKE ?", kw),
	)

	if v := c.Query("budget_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errors.Add("budget_min", "Minimum budget must be a whole number")
		} else {
			q = q.Where("budget >= ?", n)
		}
	}
	if v := c.Query("budget_max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errors.Add("budget_max", "Maximum budget must be a whole number")
		} else {
			q = q.Where("budget <= ?", n)
		}
	}

	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]fiber.Map, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectOut(p))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
