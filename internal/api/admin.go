package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bountyboard/internal/domain"
	"bountyboard/internal/store"
	"bountyboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// pageParams reads page/page_size query parameters with the usual bounds.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}

// paginate slices items for the requested page and reports total pages.
func paginate[T any](items []T, page, pageSize int) ([]T, int) {
	totalPages := (len(items) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// UserOverview is the per-user row returned to operators.
type UserOverview struct {
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	IsActive bool           `json:"isActive"`
	Wallet   *domain.Wallet `json:"wallet,omitempty"`
}

// ListUsersHandler returns all users with their wallet info, paginated and
// cached for 60 seconds.
func ListUsersHandler(s *store.Stores, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		// The key is built from the clamped values so raw query variants of
		// the same page share one entry.
		page, pageSize := pageParams(c)
		cacheKey := "admin:users:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached gin.H
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached["cached"] = true
			c.JSON(http.StatusOK, cached)
			return
		}

		all := s.Users.List()
		rows, totalPages := paginate(all, page, pageSize)
		resp := make([]UserOverview, len(rows))
		for i, u := range rows {
			row := UserOverview{
				UserID:   u.UserID,
				Username: u.Username,
				Email:    u.Email,
				IsActive: u.IsActive,
			}
			if w, err := s.Wallets.GetWallet(u.UserID); err == nil {
				row.Wallet = &w
			}
			resp[i] = row
		}
		respData := gin.H{
			"users":       resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       len(all),
			"total_pages": totalPages,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// ListTransactionsHandler returns every ledger entry in insertion order,
// with optional wallet_id, type and status filters, paginated and cached.
func ListTransactionsHandler(s *store.Stores, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		page, pageSize := pageParams(c)
		keyParts := []string{
			"wallet_id=" + c.Query("wallet_id"),
			"type=" + c.Query("type"),
			"status=" + c.Query("status"),
			"page=" + strconv.Itoa(page),
			"page_size=" + strconv.Itoa(pageSize),
		}
		cacheKey := "admin:txs:" + strings.Join(keyParts, ":")
		var cached gin.H
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached["cached"] = true
			c.JSON(http.StatusOK, cached)
			return
		}

		all := s.Wallets.ListAllTransactions()
		filtered := all[:0:0]
		walletID, txType, status := c.Query("wallet_id"), c.Query("type"), c.Query("status")
		for _, t := range all {
			if walletID != "" && t.WalletID != walletID {
				continue
			}
			if txType != "" && t.Type != txType {
				continue
			}
			if status != "" && t.Status != status {
				continue
			}
			filtered = append(filtered, t)
		}

		rows, totalPages := paginate(filtered, page, pageSize)
		respData := gin.H{
			"transactions": rows,
			"page":         page,
			"page_size":    pageSize,
			"total":        len(filtered),
			"total_pages":  totalPages,
			"cached":       false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// SettleTransactionHandler drives a pending ledger entry to Completed or
// Failed. Completing applies the amount to the wallet balance; both
// outcomes are terminal.
func SettleTransactionHandler(s *store.Stores, rdb *redis.Client, complete bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		txID := c.Param("id")
		var (
			tx  domain.Transaction
			err error
		)
		if complete {
			tx, err = s.Wallets.CompleteTransaction(txID)
		} else {
			tx, err = s.Wallets.FailTransaction(txID)
		}
		if err != nil {
			c.JSON(storeErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"transaction_id": tx.TransactionID,
			"wallet_id":      tx.WalletID,
			"status":         tx.Status,
			"amount":         tx.Amount.String(),
		}).Info("Transaction settled")

		if wallet, werr := s.Wallets.GetWalletByID(tx.WalletID); werr == nil {
			s.Notifications.Create(wallet.UserID, "wallet",
				"Transaction "+strings.ToLower(tx.Status), tx.TransactionID)
			ctx := context.Background()
			_ = utils.DeleteCache(ctx, rdb, utils.WalletCacheKey(wallet.UserID))
			_ = utils.DeleteCache(ctx, rdb, utils.TxHistoryCacheKey(tx.WalletID))
		}
		c.JSON(http.StatusOK, gin.H{"transaction": tx})
	}
}
