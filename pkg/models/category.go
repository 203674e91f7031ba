package models

// Category represents a transaction category
type Category struct {
	ID              ID              `json:"id"`
	Name            string          `json:"name"`
	WalletID        *ID             `json:"wallet_id"`
	ImageID         int             `json:"image_id"`
	Status          string          `json:"status,omitempty"`
	Type            string          `json:"type,omitempty"`
	Position        int             `json:"position"`
	Color           string          `json:"color,omitempty"`
	UserID          ID              `json:"user_id,omitempty"`
	Deletable       int             `json:"deletable"`
	WalletsSettings []WalletSetting `json:"wallets_settings,omitempty"`
}

// WalletSetting controls how a category shows up in one wallet
type WalletSetting struct {
	WalletID   ID  `json:"wallet_id"`
	CategoryID ID  `json:"category_id,omitempty"`
	Position   int `json:"position"`
	Visible    int `json:"visible"`
}
