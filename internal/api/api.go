// Package api hosts the Gin endpoints that wrap the Driver for remote
// callers, the way the teacher's controllers package hosts kmeans and
// silhouette behind HTTP handlers. This is the ambient transport layer
// the clustering core has no opinion about.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"aswcluster/pkg/distance"
	"aswcluster/pkg/driver"
)

// ClusterRequest is the POST /cluster and GET /cluster/stream body.
type ClusterRequest struct {
	Distance [][]float64    `json:"distance"`
	Options  map[string]any `json:"options"`
}

// Router builds the Gin engine exposing the clustering endpoints.
func Router() *gin.Engine {
	engine := gin.Default()
	engine.POST("/cluster", handleCluster)
	engine.GET("/cluster/stream", handleClusterStream)
	return engine
}

func parseRequest(c *gin.Context) (*distance.Matrix, driver.Options, error) {
	var req ClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, driver.Options{}, err
	}
	d, err := distance.FromDense(req.Distance, 1e-9)
	if err != nil {
		return nil, driver.Options{}, err
	}
	opts, err := driver.DecodeOptions(req.Options)
	if err != nil {
		return nil, driver.Options{}, err
	}
	return d, opts, nil
}

// handleCluster runs the Driver synchronously and returns the spec's
// output contract as JSON.
func handleCluster(c *gin.Context) {
	d, opts, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := driver.Run(d, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleClusterStream upgrades to a websocket and forwards one JSON
// message per k as the Driver's sweep completes, instead of blocking
// until the whole sweep finishes.
func handleClusterStream(c *gin.Context) {
	d, opts, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	progress := make(chan driver.KResult)
	done := make(chan struct{})
	var result driver.Result
	var runErr error

	go func() {
		defer close(done)
		result, runErr = driver.RunStream(ctx, d, opts, progress)
	}()

	for kr := range progress {
		if err := conn.WriteJSON(kr); err != nil {
			cancel()
			break
		}
	}
	<-done

	if runErr != nil {
		_ = conn.WriteJSON(gin.H{"error": runErr.Error()})
		return
	}
	_ = conn.WriteJSON(gin.H{"done": true, "result": result})
}
