package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"freelancehub/internal/flash"
	"freelancehub/internal/models"
)

type ReviewHandler struct {
	DB    *gorm.DB
	Flash flash.Store
}

func NewReviewHandler(db *gorm.DB, fl flash.Store) *ReviewHandler {
	return &ReviewHandler{DB: db, Flash: fl}
}

// loadTarget resolves the freelancer/project pair from the route params.
// The target user does not have to carry the freelancer flag; the route has
// never enforced that.
func (h *ReviewHandler) loadTarget(c *fiber.Ctx) (models.User, models.Project, error) {
	var freelancer models.User
	var project models.Project

	freelancerID, err := c.ParamsInt("freelancer_id")
	if err != nil || freelancerID <= 0 {
		return freelancer, project, fiber.NewError(fiber.StatusBadRequest, "Invalid freelancer ID")
	}
	projectID, err := c.ParamsInt("project_id")
	if err != nil || projectID <= 0 {
		return freelancer, project, fiber.NewError(fiber.StatusBadRequest, "Invalid project ID")
	}

	if err := h.DB.First(&freelancer, "id = ?", freelancerID).Error; err != nil {
		return freelancer, project, fiber.NewError(fiber.StatusNotFound, "Freelancer not found")
	}
	if err := h.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return freelancer, project, fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	return freelancer, project, nil
}

// LeaveReviewPage serves the context the review form renders against.
func (h *ReviewHandler) LeaveReviewPage(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return fiber.ErrUnauthorized
	}

	freelancer, project, err := h.loadTarget(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"freelancer": fiber.Map{
				"id":            freelancer.ID,
				"username":      freelancer.Username,
				"is_freelancer": freelancer.IsFreelancer,
			},
			"project": fiber.Map{
				"id":    project.ID,
				"title": project.Title,
			},
		},
		"notices": popFlash(c, h.Flash),
	})
}

type LeaveReviewReq struct {
	Content string `json:"content" form:"content"`
	Rating  int    `json:"rating" form:"rating"`
}

func (h *ReviewHandler) LeaveReview(c *fiber.Ctx) error {
	uid, err := getUserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	freelancer, project, err := h.loadTarget(c)
	if err != nil {
		return err
	}

	var req LeaveReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	errors := FieldErrors{}
	if strings.TrimSpace(req.Content) == "" {
		errors.Add("content", "Content is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		errors.Add("rating", "Rating must be between 1 and 5")
	}

	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	review := models.Review{
		Content:      strings.TrimSpace(req.Content),
		Rating:       req.Rating,
		FreelancerID: freelancer.ID,
		ProjectID:    project.ID,
		UserID:       uid,
	}

	if err := h.DB.Create(&review).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	pushFlash(c, h.Flash, "success", "Your review has been posted!")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Your review has been posted!",
		"redirect": "/dashboard",
		"data": fiber.Map{
			"id":            review.ID,
			"content":       review.Content,
			"rating":        review.Rating,
			"freelancer_id": review.FreelancerID,
			"project_id":    review.ProjectID,
			"user_id":       review.UserID,
			"created_at":    review.CreatedAt,
		},
	})
}

// FreelancerReviews lists the reviews a freelancer has received, newest
// first, with reviewer and project context.
func (h *ReviewHandler) FreelancerReviews(c *fiber.Ctx) error {
	freelancerID, err := c.ParamsInt("id")
	if err != nil || freelancerID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid freelancer ID")
	}

	var freelancer models.User
	if err := h.DB.First(&freelancer, "id = ?", freelancerID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Freelancer not found")
	}

	var reviews []models.Review
	if err := h.DB.
		Where("freelancer_id = ?", freelancerID).
		Preload("Author").
		Preload("Project").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		return fiber.ErrInternalServerError
	}

	out := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		item := fiber.Map{
			"id":            r.ID,
			"content":       r.Content,
			"rating":        r.Rating,
			"freelancer_id": r.FreelancerID,
			"project_id":    r.ProjectID,
			"user_id":       r.UserID,
			"created_at":    r.CreatedAt,
		}
		if r.Author != nil {
			item["author"] = fiber.Map{
				"id":       r.Author.ID,
				"username": r.Author.Username,
			}
		}
		if r.Project != nil {
			item["project"] = fiber.Map{
				"id":    r.Project.ID,
				"title": r.Project.Title,
			}
		}
		out = append(out, item)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
