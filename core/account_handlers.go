package core

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// loginFailedMessage is shared by the unknown-email and wrong-password paths
// so the two are indistinguishable to a caller probing for accounts.
const loginFailedMessage = "The email and password combination was not found."

func loginView(r *PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.Render(c, http.StatusOK, "account/login", gin.H{"Title": "Account Login", "Email": ""})
	}
}

func registerView(r *PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.Render(c, http.StatusOK, "account/register", gin.H{
			"Title":     "Create Account",
			"Firstname": "",
			"Lastname":  "",
			"Email":     "",
		})
	}
}

// processRegistration validates, hashes, and persists a new account. A new
// registration never issues a token; the user logs in explicitly afterwards.
func processRegistration(r *PageRenderer, accounts AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := RegistrationForm{
			Firstname: c.PostForm("account_firstname"),
			Lastname:  c.PostForm("account_lastname"),
			Email:     c.PostForm("account_email"),
			Password:  c.PostForm("account_password"),
		}

		redisplay := func(status int, errs []FieldError) {
			r.Render(c, status, "account/register", gin.H{
				"Title":     "Create Account",
				"Errors":    errs,
				"Firstname": form.Firstname,
				"Lastname":  form.Lastname,
				"Email":     form.Email,
			})
		}

		if errs := form.Validate(); len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		hash, err := HashPassword(form.Password)
		if err != nil {
			log.Printf("error: hashing registration password: %v", err)
			redisplay(http.StatusInternalServerError, []FieldError{{Message: "Sorry, we could not register you at this time."}})
			return
		}

		if _, err := accounts.Create(c.Request.Context(), form.Firstname, form.Lastname, form.Email, hash); err != nil {
			message := "Sorry, we could not register you at this time."
			status := http.StatusInternalServerError
			if errors.Is(err, ErrDuplicateEmail) {
				message = "That email address is already registered. Please log in instead."
				status = http.StatusBadRequest
			} else {
				log.Printf("error: creating account: %v", err)
			}
			redisplay(status, []FieldError{{Field: "account_email", Message: message}})
			return
		}

		Flash(c, FlashSuccess, fmt.Sprintf("Congratulations, %s. Please log in.", form.Firstname))
		c.Redirect(http.StatusFound, "/account/login")
	}
}

// processLogin verifies credentials and, on success, binds a fresh bearer
// token to the auth cookie.
func processLogin(cfg Config, r *PageRenderer, auth AuthService, tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := LoginForm{
			Email:    c.PostForm("account_email"),
			Password: c.PostForm("account_password"),
		}

		redisplay := func(status int, errs []FieldError) {
			r.Render(c, status, "account/login", gin.H{
				"Title":  "Account Login",
				"Errors": errs,
				"Email":  form.Email,
			})
		}

		if errs := form.Validate(); len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		account, err := auth.Authenticate(c.Request.Context(), form.Email, form.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				redisplay(http.StatusBadRequest, []FieldError{{Message: loginFailedMessage}})
			case errors.Is(err, ErrCorruptCredential):
				log.Printf("error: corrupt credential hash for login email=%s", form.Email)
				redisplay(http.StatusInternalServerError, []FieldError{{Message: "Unexpected error logging in. Please try again."}})
			default:
				log.Printf("error: authenticating login: %v", err)
				redisplay(http.StatusInternalServerError, []FieldError{{Message: "Unexpected error logging in. Please try again."}})
			}
			return
		}

		token, err := tokens.Issue(account)
		if err != nil {
			log.Printf("error: issuing token: %v", err)
			redisplay(http.StatusInternalServerError, []FieldError{{Message: "Unexpected error logging in. Please try again."}})
			return
		}

		attachAuthCookie(c, cfg, token)
		Flash(c, FlashSuccess, fmt.Sprintf("Welcome back, %s!", account.Firstname))
		c.Redirect(http.StatusFound, "/account/")
	}
}

func managementView(r *PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := CurrentAccount(c)
		r.Render(c, http.StatusOK, "account/management", gin.H{
			"Title":     "Account Management",
			"CanManage": claims.Role().CanManageInventory(),
		})
	}
}

func updateAccountView(r *PageRenderer, accounts AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
		if err != nil {
			r.RenderError(c, http.StatusNotFound, "That account could not be found.")
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				r.RenderError(c, http.StatusNotFound, "That account could not be found.")
				return
			}
			serverError(c, r, err)
			return
		}

		r.Render(c, http.StatusOK, "account/update", gin.H{
			"Title":     "Update Account",
			"Firstname": account.Firstname,
			"Lastname":  account.Lastname,
			"Email":     account.Email,
			"AccountID": account.ID,
		})
	}
}

// processAccountUpdate persists the profile edit and re-issues the token
// from a fresh read so no stale claim (including a role changed elsewhere)
// survives the update.
func processAccountUpdate(cfg Config, r *PageRenderer, accounts AccountRepository, tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, _ := strconv.ParseInt(c.PostForm("account_id"), 10, 64)
		form := UpdateAccountForm{
			Firstname: c.PostForm("account_firstname"),
			Lastname:  c.PostForm("account_lastname"),
			Email:     c.PostForm("account_email"),
			AccountID: accountID,
		}

		redisplay := func(status int, errs []FieldError) {
			r.Render(c, status, "account/update", gin.H{
				"Title":     "Update Account",
				"Errors":    errs,
				"Firstname": form.Firstname,
				"Lastname":  form.Lastname,
				"Email":     form.Email,
				"AccountID": form.AccountID,
			})
		}

		errs, err := form.Validate(c.Request.Context(), accounts)
		if err != nil {
			serverError(c, r, err)
			return
		}
		if len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		if _, err := accounts.UpdateProfile(c.Request.Context(), form.Firstname, form.Lastname, form.Email, form.AccountID); err != nil {
			if !errors.Is(err, ErrAccountNotFound) {
				log.Printf("error: updating account %d: %v", form.AccountID, err)
			}
			Flash(c, FlashError, "Sorry, the update failed.")
			redisplay(http.StatusInternalServerError, nil)
			return
		}

		// Fresh read before reissue picks up any concurrent role change.
		account, err := accounts.GetByID(c.Request.Context(), form.AccountID)
		if err != nil {
			serverError(c, r, err)
			return
		}
		token, err := tokens.Issue(account)
		if err != nil {
			serverError(c, r, err)
			return
		}
		attachAuthCookie(c, cfg, token)

		Flash(c, FlashSuccess, fmt.Sprintf("Congratulations, %s, you've successfully updated your account info.", account.Firstname))
		c.Redirect(http.StatusFound, "/account/")
	}
}

// processPasswordChange validates strength before anything touches the
// datastore; the password itself is never echoed or logged.
func processPasswordChange(r *PageRenderer, accounts AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, _ := strconv.ParseInt(c.PostForm("account_id"), 10, 64)
		form := PasswordForm{
			Password:  c.PostForm("account_password"),
			AccountID: accountID,
		}

		redisplay := func(status int, errs []FieldError) {
			data := gin.H{
				"Title":     "Update Account",
				"Errors":    errs,
				"AccountID": form.AccountID,
				"Firstname": "",
				"Lastname":  "",
				"Email":     "",
			}
			// Reload current profile values so the update form is complete.
			if account, err := accounts.GetByID(c.Request.Context(), form.AccountID); err == nil {
				data["Firstname"] = account.Firstname
				data["Lastname"] = account.Lastname
				data["Email"] = account.Email
			}
			r.Render(c, status, "account/update", data)
		}

		if errs := form.Validate(); len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		hash, err := HashPassword(form.Password)
		if err != nil {
			log.Printf("error: hashing new password: %v", err)
			Flash(c, FlashError, "Sorry, the password update failed.")
			redisplay(http.StatusInternalServerError, nil)
			return
		}

		if _, err := accounts.UpdatePassword(c.Request.Context(), hash, form.AccountID); err != nil {
			if !errors.Is(err, ErrAccountNotFound) {
				log.Printf("error: updating password for account %d: %v", form.AccountID, err)
			}
			Flash(c, FlashError, "Sorry, the password update failed.")
			redisplay(http.StatusInternalServerError, nil)
			return
		}

		Flash(c, FlashSuccess, "Congratulations, you've successfully updated your password.")
		c.Redirect(http.StatusFound, "/account/")
	}
}

// logout clears the auth cookie unconditionally. Logging out while already
// anonymous is a no-op, not an error.
func logout(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearAuthCookie(c, cfg)
		Flash(c, FlashNotice, "You have been logged out.")
		c.Redirect(http.StatusFound, "/")
	}
}
