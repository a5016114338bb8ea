package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/backup"
	"github.com/spendwise/backend/internal/httputil"
)

// backupService copies the database to and from cloud storage. Set by
// RegisterBackupRoutes. It is nil when no backup bucket is configured.
var backupService *backup.Service

var errBackupNotConfigured = "backups are not configured, set BACKUP_BUCKET"

// RegisterBackupRoutes registers the routes for backups with the
// RouterGroup that is passed.
func RegisterBackupRoutes(r *gin.RouterGroup, service *backup.Service) {
	backupService = service

	r.OPTIONS("/backup", OptionsBackup)
	r.POST("/backup", CreateBackup)

	r.OPTIONS("/restore", OptionsBackup)
	r.POST("/restore", RestoreBackup)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Backup
// @Success		204
// @Router			/v1/backup [options]
func OptionsBackup(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Back up the database
// @Description	Uploads the database to the configured cloud storage bucket, replacing the previous backup
// @Tags			Backup
// @Produce		json
// @Success		204
// @Failure		500	{object}	httpError
// @Failure		501	{object}	httpError
// @Router			/v1/backup [post]
func CreateBackup(c *gin.Context) {
	if backupService == nil {
		c.JSON(http.StatusNotImplemented, httpError{
			Error: errBackupNotConfigured,
		})
		return
	}

	err := backupService.Backup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Restore the database
// @Description	Replaces the database with the backup from the configured cloud storage bucket. All data since the backup is lost.
// @Tags			Backup
// @Produce		json
// @Success		204
// @Failure		500	{object}	httpError
// @Failure		501	{object}	httpError
// @Router			/v1/restore [post]
func RestoreBackup(c *gin.Context) {
	if backupService == nil {
		c.JSON(http.StatusNotImplemented, httpError{
			Error: errBackupNotConfigured,
		})
		return
	}

	err := backupService.Restore(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
