package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
)

func DevRouter(r *gin.RouterGroup, dep *dependency.Dependency) {
	if dep.Cfg.GinMode != gin.DebugMode {
		return
	}

	r.POST("/reset", func(c *gin.Context) {
		db.ResetDB(dep.DB, dep.Logger)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
