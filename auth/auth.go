package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"pranerpujo/db"
	"pranerpujo/globals"
	"pranerpujo/middleware"
	"pranerpujo/models"
	"pranerpujo/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// NewToken issues a signed bearer token for an admin id.
func NewToken(adminID string, now time.Time) (string, error) {
	claims := &middleware.Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	err := db.AdminCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Admin already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("signup: bcrypt error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if _, err := db.AdminCollection.InsertOne(ctx, admin); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Error creating admin", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bson.M{
		"message": "Admin registered successfully",
		"admin":   admin,
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	var admin models.Admin
	if err := db.AdminCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := NewToken(admin.ID.Hex(), time.Now())
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{
		"message": "Login successful",
		"token":   token,
		"admin": bson.M{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}

func Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	adminID, err := utils.ParseID(middleware.AdminIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	var admin models.Admin
	if err := db.AdminCollection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, admin)
}
