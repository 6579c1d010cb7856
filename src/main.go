package main

import (
	"etix/src/boot"
	"etix/src/config"
	"etix/src/middlewares"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

// eventdate accepts either of the two supported datetime formats.
var eventDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if _, err := time.Parse(config.TIME_PARSE_FORMAT, value); err == nil {
		return true
	}
	_, err := time.Parse(config.TIME_PARSE_FORMAT_ALT, value)
	return err == nil
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("eventdate", eventDateValidatorFunc)
	}
}

func publicRoutes(g *gin.Engine) *gin.Engine {
	g = publicEventRoutes(g)
	g = registrationRoutes(g)
	g = authRoutes(g)
	return g
}

func authorizedRoutes(g *gin.Engine) *gin.RouterGroup {
	authorized := g.Group("/")
	authorized.Use(middlewares.AuthMiddleware)
	authorized = createEventHandlers(authorized)
	authorized = revenueHandlers(authorized)
	return authorized
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()

	router := setupRouter()
	if appEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = []string{os.Getenv("APP_HOST")}
		cc.AllowCredentials = true
		router.Use(cors.New(cc))
	}

	registerValidators()

	publicRoutes(router)
	authorizedRoutes(router)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":5000"
	}
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
