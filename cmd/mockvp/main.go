package main

import (
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// mockvp is a stand-in verification provider for local development. It
// accepts any record whose names are non-blank and whose date of birth lies
// in the past.
func main() {
	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.POST("/api/validation", func(c *gin.Context) {
		var record map[string]string
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected a flat JSON object"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"valid": validate(record)})
	})

	log.Printf("mock verification provider listening on %s", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("mockvp: %v", err)
	}
}

func validate(record map[string]string) bool {
	if strings.TrimSpace(record["firstName"]) == "" {
		return false
	}
	if strings.TrimSpace(record["lastName"]) == "" {
		return false
	}

	dob, err := time.Parse("2006-01-02", record["dateOfBirth"])
	if err != nil {
		return false
	}
	return dob.Before(time.Now())
}
