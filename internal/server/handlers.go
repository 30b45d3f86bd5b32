package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/remote"
)

const userLocal = "userID"

// Handler serves the sync API.
type Handler struct {
	repo *Repo
	log  zerolog.Logger
}

func NewHandler(repo *Repo, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(remote.ErrorBody{Error: msg})
}

// requireUser resolves the X-User-ID header.
func (h *Handler) requireUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(strings.TrimSpace(c.Get(remote.UserHeader)))
	if err != nil || userID == uuid.Nil {
		return errorJSON(c, fiber.StatusUnauthorized, "User ID required in X-User-ID header")
	}
	c.Locals(userLocal, userID)
	return c.Next()
}

func userOf(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userLocal).(uuid.UUID)
	return id
}

func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, msg+" not found")
	case errors.Is(err, ErrConflict):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Str("user_id", userOf(c).String()).Msg(msg)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to process "+msg)
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// optionalID parses a client supplied id; empty means generate one.
func optionalID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	p, err := h.repo.GetProfile(c.UserContext(), userOf(c))
	if err != nil {
		return h.fail(c, err, "profile")
	}
	return c.JSON(profileRecord(p))
}

func (h *Handler) PutProfile(c *fiber.Ctx) error {
	var in remote.ProfileRecord
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errorJSON(c, fiber.StatusBadRequest, model.ErrMissingName.Error())
	}
	p, err := h.repo.UpsertProfile(c.UserContext(), userOf(c), Profile{
		Name:                   in.Name,
		Age:                    in.Age,
		Role:                   in.Role,
		StartingBalance:        in.StartingBalance,
		Currency:               model.NormalizeCurrencyCode(in.Currency),
		MonthlyIncomeEstimate:  in.MonthlyIncomeEstimate,
		MonthlyExpenseEstimate: in.MonthlyExpenseEstimate,
		MonthlyBudgetTarget:    in.MonthlyBudgetTarget,
	})
	if err != nil {
		return h.fail(c, err, "profile")
	}
	return c.JSON(profileRecord(p))
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	rows, err := h.repo.ListTransactions(c.UserContext(), userOf(c))
	if err != nil {
		return h.fail(c, err, "transactions")
	}
	out := make([]remote.TransactionRecord, 0, len(rows))
	for _, t := range rows {
		out = append(out, transactionRecord(t))
	}
	return c.JSON(out)
}

func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	var in remote.TransactionRecord
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	id, err := optionalID(in.ID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "id must be a uuid")
	}
	t := in.ToTransaction()
	if err := model.ValidateTransaction(t); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}
	row, created, err := h.repo.CreateTransaction(c.UserContext(), userOf(c), Transaction{
		ID:            id,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Date:          t.Date.UTC(),
		Category:      string(t.Category),
		Notes:         t.Notes,
		PaymentMethod: t.PaymentMethod,
		Tags:          t.Tags,
	})
	if err != nil {
		return h.fail(c, err, "transaction")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(transactionRecord(row))
}

func (h *Handler) DeleteTransaction(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "id must be a uuid")
	}
	if err := h.repo.DeleteTransaction(c.UserContext(), userOf(c), id); err != nil {
		return h.fail(c, err, "transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListGoals(c *fiber.Ctx) error {
	rows, err := h.repo.ListGoals(c.UserContext(), userOf(c))
	if err != nil {
		return h.fail(c, err, "goals")
	}
	out := make([]remote.GoalRecord, 0, len(rows))
	for _, g := range rows {
		out = append(out, goalRecord(g))
	}
	return c.JSON(out)
}

func (h *Handler) CreateGoal(c *fiber.Ctx) error {
	var in remote.GoalRecord
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	id, err := optionalID(in.ID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "id must be a uuid")
	}
	if err := model.ValidateGoal(in.ToGoal()); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	start := in.StartDate.UTC()
	if in.StartDate.IsZero() {
		start = time.Now().UTC()
	}
	row, created, err := h.repo.CreateGoal(c.UserContext(), userOf(c), Goal{
		ID:            id,
		Name:          in.Name,
		Category:      in.Category,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		StartDate:     start,
		EndDate:       in.EndDate,
		Notes:         in.Notes,
		Color:         in.Color,
	})
	if err != nil {
		return h.fail(c, err, "goal")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(goalRecord(row))
}

func (h *Handler) UpdateGoal(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "id must be a uuid")
	}
	var u remote.GoalUpdate
	if err := c.BodyParser(&u); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	row, err := h.repo.UpdateGoal(c.UserContext(), userOf(c), id, func(g *Goal) {
		if u.Name != nil {
			g.Name = *u.Name
		}
		if u.Category != nil {
			g.Category = *u.Category
		}
		if u.TargetAmount != nil {
			g.TargetAmount = *u.TargetAmount
		}
		if u.CurrentAmount != nil {
			g.CurrentAmount = *u.CurrentAmount
		}
		if u.StartDate != nil {
			g.StartDate = u.StartDate.UTC()
		}
		if u.EndDate != nil {
			end := u.EndDate.UTC()
			g.EndDate = &end
		}
		if u.Notes != nil {
			g.Notes = *u.Notes
		}
		if u.Color != nil {
			g.Color = *u.Color
		}
	})
	if err != nil {
		return h.fail(c, err, "goal")
	}
	return c.JSON(goalRecord(row))
}

func (h *Handler) DeleteGoal(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "id must be a uuid")
	}
	if err := h.repo.DeleteGoal(c.UserContext(), userOf(c), id); err != nil {
		return h.fail(c, err, "goal")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func profileRecord(p Profile) remote.ProfileRecord {
	return remote.ProfileRecord{
		Name:                   p.Name,
		Age:                    p.Age,
		Role:                   p.Role,
		StartingBalance:        p.StartingBalance,
		Currency:               p.Currency,
		MonthlyIncomeEstimate:  p.MonthlyIncomeEstimate,
		MonthlyExpenseEstimate: p.MonthlyExpenseEstimate,
		MonthlyBudgetTarget:    p.MonthlyBudgetTarget,
		UpdatedAt:              p.UpdatedAt.UTC(),
	}
}

func transactionRecord(t Transaction) remote.TransactionRecord {
	return remote.TransactionRecord{
		ID:            t.ID.String(),
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date.UTC(),
		Category:      t.Category,
		Notes:         t.Notes,
		PaymentMethod: t.PaymentMethod,
		Tags:          t.Tags,
		CreatedAt:     t.CreatedAt.UTC(),
	}
}

func goalRecord(g Goal) remote.GoalRecord {
	rec := remote.GoalRecord{
		ID:            g.ID.String(),
		Name:          g.Name,
		Category:      g.Category,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		StartDate:     g.StartDate.UTC(),
		Notes:         g.Notes,
		Color:         g.Color,
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}
	if g.EndDate != nil {
		end := g.EndDate.UTC()
		rec.EndDate = &end
	}
	return rec
}
