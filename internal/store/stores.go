package store

// Stores bundles every in-memory store. Built once at process start and
// handed to the handlers; state lives for the process lifetime only.
type Stores struct {
	Users         *UserStore
	Wallets       *WalletStore
	Locations     *LocationStore
	Billings      *BillingStore
	Tasks         *TaskStore
	Notifications *NotificationStore
}

// New creates an empty store set.
func New() *Stores {
	return &Stores{
		Users:         NewUserStore(),
		Wallets:       NewWalletStore(),
		Locations:     NewLocationStore(),
		Billings:      NewBillingStore(),
		Tasks:         NewTaskStore(),
		Notifications: NewNotificationStore(),
	}
}
