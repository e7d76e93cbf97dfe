package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bountyboard/internal/domain"
	"bountyboard/internal/geocode"
	"bountyboard/internal/middleware"
	"bountyboard/internal/store"
	"bountyboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProfileHandler loads the profile page data: user, wallet, transaction
// history, locations and billing methods. The wallet is created lazily on
// the first view; the stores themselves never create one.
func ProfileHandler(s *store.Stores, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if sessionUser, _ := middleware.UserID(c); sessionUser != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		user, err := s.Users.GetByID(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		ctx := context.Background()
		walletKey := utils.WalletCacheKey(userID)
		var wallet domain.Wallet
		if found, cerr := utils.GetCache(ctx, rdb, walletKey, &wallet); cerr != nil || !found {
			wallet, err = s.Wallets.GetWallet(userID)
			if err != nil {
				wallet, err = s.Wallets.CreateWallet(userID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
					return
				}
				logrus.WithFields(logrus.Fields{
					"user_id":   userID,
					"wallet_id": wallet.WalletID,
				}).Info("Wallet created on first profile view")
			}
			_ = utils.SetCache(ctx, rdb, walletKey, wallet, 60*time.Second)
		}

		txKey := utils.TxHistoryCacheKey(wallet.WalletID)
		var transactions []domain.Transaction
		cached, err := utils.GetCache(ctx, rdb, txKey, &transactions)
		if err != nil || !cached {
			transactions = s.Wallets.ListTransactions(wallet.WalletID)
			_ = utils.SetCache(ctx, rdb, txKey, transactions, 60*time.Second)
			cached = false
		}

		c.JSON(http.StatusOK, gin.H{
			"user":         user,
			"wallet":       wallet,
			"transactions": transactions,
			"locations":    s.Locations.ListByUser(userID),
			"billings":     s.Billings.ListByUser(userID),
			"cached":       cached,
		})
	}
}

// ProfileActionHandler dispatches the profile page form posts on the
// "action" field. Unknown actions are rejected, not ignored.
func ProfileActionHandler(s *store.Stores, geo *geocode.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if sessionUser, _ := middleware.UserID(c); sessionUser != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		switch c.PostForm("action") {
		case "update":
			updateUser(c, s, userID)
		case "delete":
			deleteUser(c, s, userID)
		case "logout":
			c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
			c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		case "transaction":
			recordTransaction(c, s, rdb, userID)
		case "addLocation":
			addLocation(c, s, geo, userID)
		case "setDefaultLocation":
			if err := s.Locations.SetDefault(userID, c.PostForm("locationId")); err != nil {
				c.JSON(storeErrorStatus(err), gin.H{"error": "Location not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Default location updated"})
		case "addBilling":
			billing := s.Billings.Create(store.CreateBillingParams{
				UserID:            userID,
				BankAccountNumber: c.PostForm("bankAccountNumber"),
				IFSCCode:          c.PostForm("ifscCode"),
				BankName:          c.PostForm("bankName"),
				UPIID:             c.PostForm("upiId"),
			})
			c.JSON(http.StatusCreated, gin.H{"billing": billing})
		case "setDefaultBilling":
			if err := s.Billings.SetDefault(userID, c.PostForm("billingId")); err != nil {
				c.JSON(storeErrorStatus(err), gin.H{"error": "Billing method not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Default billing method updated"})
		case "verifyBilling":
			verifyBilling(c, s, userID)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		}
	}
}

func updateUser(c *gin.Context, s *store.Stores, userID string) {
	var req store.UpdateUserRequest
	if v, ok := c.GetPostForm("username"); ok {
		req.Username = &v
	}
	if v, ok := c.GetPostForm("phoneNumber"); ok {
		req.PhoneNumber = &v
	}
	if v, ok := c.GetPostForm("referCode"); ok {
		req.ReferCode = &v
	}
	user, err := s.Users.Update(userID, req)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func deleteUser(c *gin.Context, s *store.Stores, userID string) {
	if err := s.Users.Deactivate(userID); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "User not found"})
		return
	}
	logrus.WithField("user_id", userID).Info("Account deactivated")
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func recordTransaction(c *gin.Context, s *store.Stores, rdb *redis.Client, userID string) {
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	walletID := c.PostForm("walletId")
	tx, err := s.Wallets.RecordTransaction(store.RecordTransactionParams{
		WalletID:    walletID,
		Type:        c.PostForm("type"),
		Amount:      amount,
		Source:      c.PostForm("source"),
		Description: c.PostForm("description"),
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"wallet_id": walletID,
			"error":     err.Error(),
		}).Warn("Transaction rejected")
		c.JSON(storeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"wallet_id":      walletID,
		"transaction_id": tx.TransactionID,
		"type":           tx.Type,
		"amount":         tx.Amount.String(),
	}).Info("Transaction recorded")
	s.Notifications.Create(userID, "wallet",
		tx.Type+" of "+tx.Amount.String()+" recorded", tx.TransactionID)

	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, utils.WalletCacheKey(userID))
	_ = utils.DeleteCache(ctx, rdb, utils.TxHistoryCacheKey(walletID))
	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

func addLocation(c *gin.Context, s *store.Stores, geo *geocode.Client, userID string) {
	lat, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}
	p := store.CreateLocationParams{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lon,
		Address:   c.PostForm("address"),
		City:      c.PostForm("city"),
		Country:   c.PostForm("country"),
	}
	// Backfill missing address fields from the geocoding provider. A failed
	// lookup is logged and the fields stay empty.
	if geo != nil && p.Address == "" && p.City == "" && p.Country == "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		res, err := geo.Reverse(ctx, lat, lon)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"lat":     lat,
				"lon":     lon,
				"error":   err.Error(),
			}).Warn("Reverse geocode failed")
		} else {
			p.Address = res.Address
			p.City = res.City
			p.Country = res.Country
		}
	}
	location := s.Locations.Create(p)
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

func verifyBilling(c *gin.Context, s *store.Stores, userID string) {
	billing, err := s.Billings.Verify(userID, c.PostForm("billingId"))
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Billing method not found"})
		return
	}
	s.Notifications.Create(userID, "billing", "Billing method verified", billing.BillingID)
	c.JSON(http.StatusOK, gin.H{"billing": billing})
}
