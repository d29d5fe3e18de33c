package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neighborly/neighborly-be/app"
	"github.com/neighborly/neighborly-be/config"
	"github.com/neighborly/neighborly-be/db/mysql"
	"github.com/neighborly/neighborly-be/routes"
	"github.com/neighborly/neighborly-be/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", err)
	}

	database, err := mysql.GetDatabase(&mysql.Config{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer database.Close()

	if err = configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	firebaseApp, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := firebaseApp.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}

	reportBucket, err := services.NewStorageBucket(context.Background(), firebaseApp, cfg.StorageBucket)
	if err != nil {
		log.Fatal("An error occurred while connecting to the report uploads bucket", err)
	}

	shadowbanCache := app.NewShadowbanCache(database)
	submitter := app.NewSubmitter(database, reportBucket)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddReportRoutes(&r.RouterGroup, database, submitter, reportBucket, authClient)
	routes.AddFeedRoutes(&r.RouterGroup, database, shadowbanCache, authClient)
	routes.AddModerationRoutes(&r.RouterGroup, database, shadowbanCache, authClient)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentails to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
