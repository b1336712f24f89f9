package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/service"
)

// Handler wires HTTP routes to the ledger services.
type Handler struct {
	users      service.UserService
	statements service.StatementService
	jwtSecret  string
	tokenTTL   time.Duration
	logger     *logrus.Logger
}

func NewHandler(users service.UserService, statements service.StatementService, jwtSecret string, tokenTTL time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		users:      users,
		statements: statements,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/users", h.createUser)
		api.POST("/sessions", h.createSession)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authed := api.Group("")
		authed.Use(h.authMiddleware())
		{
			authed.GET("/profile", h.showProfile)
			authed.GET("/statements/balance", h.getBalance)
			authed.POST("/statements/deposit", h.deposit)
			authed.POST("/statements/withdraw", h.withdraw)
			authed.POST("/statements/transfers/:recipient_id", h.createTransfer)
			authed.GET("/statements/:statement_id", h.getStatementOperation)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createSessionRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type operationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userToResponse(user),
		"token": token,
	})
}

func (h *Handler) showProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) getBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	balance, statement, err := h.statements.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := BalanceResponse{
		Balance:   balance.String(),
		Statement: make([]StatementResponse, len(statement)),
	}
	for i := range statement {
		resp.Statement[i] = statementToResponse(statement[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deposit(c *gin.Context) {
	h.createStatement(c, domain.OperationDeposit)
}

func (h *Handler) withdraw(c *gin.Context) {
	h.createStatement(c, domain.OperationWithdraw)
}

func (h *Handler) createStatement(c *gin.Context, opType domain.OperationType) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req operationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op, err := h.statements.CreateStatement(c.Request.Context(), userID, opType, req.Amount, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statementToResponse(*op))
}

func (h *Handler) createTransfer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipientID, err := uuid.Parse(c.Param("recipient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient id"})
		return
	}

	var req operationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op, err := h.statements.CreateTransfer(c.Request.Context(), userID, recipientID, req.Amount, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statementToResponse(*op))
}

func (h *Handler) getStatementOperation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statementID, err := uuid.Parse(c.Param("statement_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statement id"})
		return
	}

	op, err := h.statements.GetOperation(c.Request.Context(), userID, statementID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statementToResponse(*op))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrStatementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrIncorrectCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.logger.Warnf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type StatementResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	SenderID    *string `json:"sender_id,omitempty"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

type BalanceResponse struct {
	Balance   string              `json:"balance"`
	Statement []StatementResponse `json:"statement"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func statementToResponse(op domain.StatementOperation) StatementResponse {
	resp := StatementResponse{
		ID:          op.ID.String(),
		UserID:      op.UserID.String(),
		Type:        string(op.Type),
		Amount:      op.Amount.String(),
		Description: op.Description,
		CreatedAt:   op.CreatedAt.Format(time.RFC3339),
	}
	if op.SenderID != nil {
		v := op.SenderID.String()
		resp.SenderID = &v
	}
	return resp
}
