// handlers/line.go - LINE OAuth login
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"actionboard/database"
	"actionboard/models"
	"actionboard/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	lineAuthorizeURL = "https://access.line.me/oauth2/v2.1/authorize"
	lineTokenURL     = "https://api.line.me/oauth2/v2.1/token"
	lineProfileURL   = "https://api.line.me/v2/profile"

	lineStateCookie  = "line_oauth_state"
	lineReturnCookie = "line_oauth_return"
)

var lineHTTPClient = &http.Client{Timeout: 10 * time.Second}

// LineLoginStart redirects to the LINE authorize screen. The state lands
// in an HttpOnly cookie and must come back unchanged on the callback.
func LineLoginStart(c *fiber.Ctx) error {
	channelID := os.Getenv("LINE_CHANNEL_ID")
	callbackURL := os.Getenv("LINE_CALLBACK_URL")
	if channelID == "" || callbackURL == "" {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "LINE login is not configured"})
	}

	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     lineStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   600,
	})

	// Only relative same-origin paths survive validation; anything else
	// falls back to the root.
	returnURL := utils.ValidateReturnURL(c.Query("return_url"))
	if returnURL == "" {
		returnURL = "/"
	}
	c.Cookie(&fiber.Cookie{
		Name:     lineReturnCookie,
		Value:    returnURL,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   600,
	})

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", channelID)
	params.Set("redirect_uri", callbackURL)
	params.Set("state", state)
	params.Set("scope", "profile openid")

	return c.Redirect(lineAuthorizeURL+"?"+params.Encode(), fiber.StatusFound)
}

// LineLoginCallback exchanges the authorization code, finds or creates
// the account and redirects back with a session token.
func LineLoginCallback(c *fiber.Ctx) error {
	if errMsg := c.Query("error"); errMsg != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "LINE login was cancelled"})
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(lineStateCookie) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid OAuth state"})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Missing authorization code"})
	}

	accessToken, err := exchangeLineCode(code)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "LINE token exchange failed"})
	}

	profile, err := fetchLineProfile(accessToken)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Failed to fetch LINE profile"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	user, err := findOrCreateLineUser(db, profile)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to sign in"})
	}

	token, err := generateToken(*user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
	}

	returnURL := utils.ValidateReturnURL(c.Cookies(lineReturnCookie))
	if returnURL == "" {
		returnURL = "/"
	}
	c.ClearCookie(lineStateCookie, lineReturnCookie)

	sep := "?"
	if strings.Contains(returnURL, "?") {
		sep = "&"
	}
	return c.Redirect(returnURL+sep+"token="+url.QueryEscape(token), fiber.StatusFound)
}

type lineProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

func exchangeLineCode(code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", os.Getenv("LINE_CALLBACK_URL"))
	form.Set("client_id", os.Getenv("LINE_CHANNEL_ID"))
	form.Set("client_secret", os.Getenv("LINE_CHANNEL_SECRET"))

	resp, err := lineHTTPClient.PostForm(lineTokenURL, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("line token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", errors.New("empty access token")
	}
	return payload.AccessToken, nil
}

func fetchLineProfile(accessToken string) (*lineProfile, error) {
	req, err := http.NewRequest(http.MethodGet, lineProfileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := lineHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line profile endpoint returned %d", resp.StatusCode)
	}

	var profile lineProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.UserID == "" {
		return nil, errors.New("profile response missing userId")
	}
	return &profile, nil
}

func findOrCreateLineUser(db *gorm.DB, profile *lineProfile) (*models.User, error) {
	var user models.User
	err := db.Where("line_user_id = ? AND is_deleted = ?", profile.UserID, false).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First LINE sign-in: provision a minimal account. Prefecture and
	// date of birth get filled in on the profile screen.
	lineID := profile.UserID
	placeholder := fmt.Sprintf("line_%s@line.local", uuid.New().String()[:8])
	user = models.User{
		Name:       profile.DisplayName,
		Email:      placeholder,
		Password:   "",
		AvatarURL:  profile.PictureURL,
		LineUserID: &lineID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
