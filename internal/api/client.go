package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/handiism/modplan/internal/api/dto"
	mphttp "github.com/handiism/modplan/internal/http"
	"github.com/handiism/modplan/internal/model"
)

// Endpoint paths relative to the server root.
const (
	PathLogin    = "/api/auth/login"
	PathGuest    = "/api/auth/guest"
	PathSignup   = "/api/auth/signup"
	PathGenerate = "/api/plans/generate"
	PathPlans    = "/api/plans"
)

// Client talks to the auth, plan-generation and plan-persistence services.
type Client struct {
	http     *mphttp.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a Client on top of an HTTP client. A nil logger disables
// logging.
func New(httpClient *mphttp.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:     httpClient,
		validate: validator.New(),
		logger:   logger.Named("api"),
	}
}

// Login authenticates with e-mail and password.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	req := dto.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.check(req); err != nil {
		return model.User{}, err
	}
	return c.auth(ctx, PathLogin, req, false)
}

// GuestLogin asks the server for a guest identity.
func (c *Client) GuestLogin(ctx context.Context) (model.User, error) {
	return c.auth(ctx, PathGuest, struct{}{}, true)
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, username, email, password string) (model.User, error) {
	req := dto.SignupRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := c.check(req); err != nil {
		return model.User{}, err
	}
	return c.auth(ctx, PathSignup, req, false)
}

func (c *Client) auth(ctx context.Context, path string, req any, guest bool) (model.User, error) {
	var resp dto.AuthResponse
	if err := c.post(ctx, path, req, &resp); err != nil {
		return model.User{}, err
	}
	if !resp.Success {
		return model.User{}, &RejectedError{Message: resp.Message}
	}
	return resp.ToUser(guest), nil
}

// GeneratePlan requests a generated plan and returns its semester lists
// keyed by y<year>s<n>.
func (c *Client) GeneratePlan(ctx context.Context, req dto.GenerateRequest) (map[string][]model.Module, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	var resp dto.GenerateResponse
	if err := c.post(ctx, PathGenerate, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &RejectedError{Message: resp.Message}
	}
	if resp.Plan == nil {
		return nil, fmt.Errorf("%w: response has no plan", ErrConnectivity)
	}
	return resp.Plan.ToModules(), nil
}

// SavePlan stores a plan document under label for userID.
func (c *Client) SavePlan(ctx context.Context, userID, label string, doc dto.PlanDocument) error {
	req := dto.SavePlanRequest{UserID: userID, Label: label, Plan: doc}
	if err := c.check(req); err != nil {
		return err
	}
	return c.post(ctx, PathPlans, req, nil)
}

// FetchUserPlan reports whether userID has a stored plan.
func (c *Client) FetchUserPlan(ctx context.Context, userID string) (dto.FetchPlanResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return dto.FetchPlanResponse{}, fmt.Errorf("%w: empty user id", ErrInvalidRequest)
	}

	var resp dto.FetchPlanResponse
	err := c.http.GetJSON(ctx, PathPlans+"/"+url.PathEscape(userID), &resp)
	if err != nil {
		return dto.FetchPlanResponse{}, c.classify(PathPlans, err)
	}
	return resp, nil
}

func (c *Client) check(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, req, out any) error {
	if err := c.http.PostJSON(ctx, path, req, out); err != nil {
		return c.classify(path, err)
	}
	return nil
}

// classify maps a transport-level error onto the api sentinels. A non-2xx
// response whose body carries {"success": false, "message": ...} is a
// rejection; anything else is a connectivity failure.
func (c *Client) classify(path string, err error) error {
	var se *mphttp.StatusError
	if errors.As(err, &se) {
		var body struct {
			Success *bool  `json:"success"`
			Message string `json:"message"`
		}
		if json.Unmarshal(se.Body, &body) == nil && body.Success != nil && !*body.Success {
			c.logger.Info("request rejected", zap.String("path", path), zap.Int("status", se.Code))
			return &RejectedError{Message: body.Message}
		}
	}
	c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrConnectivity, err)
}
