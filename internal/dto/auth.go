package dto

import "time"

type RegisterRequestDTO struct {
	Login    string `json:"login" example:"alice"`
	Name     string `json:"name" example:"Alice"`
	Password string `json:"password" example:"password123"`
}

type RegisterResponseDTO struct {
	Message   string    `json:"message"`
	UserID    int       `json:"userId" example:"4"`
	Login     string    `json:"login" example:"alice"`
	Name      string    `json:"name" example:"Alice"`
	Balance   int64     `json:"balance" example:"0"`
	ExpiresAt time.Time `json:"expiresAt" example:"2024-05-01T10:15:00Z"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password" example:"password123"`
}

type LoginResponseDTO struct {
	Message   string    `json:"message"`
	UserID    int       `json:"userId" example:"4"`
	ExpiresAt time.Time `json:"expiresAt" example:"2024-05-01T10:15:00Z"`
}
