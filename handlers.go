package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cvanalyzer/internal/database"
)

var uploadContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

func (a *app) routes() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/", a.handleRoot)
	router.POST("/upload-cv", a.handleUploadCV)
	router.POST("/analyze-cv/:user_id/:job_id", a.handleAnalyzeCV)
	router.GET("/get-analysis/:analysis_id", a.handleGetAnalysis)
	router.GET("/get-existing-analysis/:user_id/:job_id", a.handleGetExistingAnalysis)
	router.GET("/find-my-jobs/:user_id", a.handleFindMyJobs)

	return router
}

func (a *app) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI Resume Analyzer backend is running."})
}

// handleUploadCV stores the candidate's résumé in the object store and
// records its locator, so later analyses can find it.
func (a *app) handleUploadCV(c *gin.Context) {
	userID, err := uuid.Parse(c.PostForm("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !supportedExtension(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type: " + ext})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	key := resumeObjectKey(userID, ext)
	if err := a.storage.upload(c.Request.Context(), key, uploadContentTypes[ext], data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file: " + err.Error()})
		return
	}

	err = a.db.UpsertResume(c.Request.Context(), database.UpsertResumeParams{
		UserID:           userID,
		ObjectKey:        key,
		Extension:        ext,
		OriginalFilename: fileHeader.Filename,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save resume record: " + err.Error()})
		return
	}

	url, err := a.storage.presignGet(c.Request.Context(), key)
	if err != nil {
		log.Printf("presigning %s: %v", key, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// handleAnalyzeCV creates the pending analysis record and schedules the
// background run. The response never waits for the analysis itself.
func (a *app) handleAnalyzeCV(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}

	analysisID := uuid.New()
	err = a.db.CreateAnalysis(c.Request.Context(), database.CreateAnalysisParams{
		ID:     analysisID,
		UserID: userID,
		JobID:  jobID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create analysis: " + err.Error()})
		return
	}

	go func() {
		result, err := a.analyzer.run(context.Background(), analysisID)
		if err != nil {
			log.Printf("analysis %s: %v", analysisID, err)
			return
		}
		log.Printf("analysis %s: %s", analysisID, result)
	}()

	c.JSON(http.StatusOK, gin.H{"analysis_id": analysisID})
}

func (a *app) handleGetAnalysis(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("analysis_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis_id"})
		return
	}

	record, err := a.db.GetAnalysis(c.Request.Context(), analysisID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analysis"})
		return
	}

	// Both fields stay null while the analysis is pending (or abandoned).
	resp := gin.H{"analysis": nil, "score": nil}
	if record.Analysis.Valid {
		resp["analysis"] = record.Analysis.String
	}
	if record.Score.Valid {
		resp["score"] = record.Score.Float64
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetExistingAnalysis looks up by the (user, job) pair instead of the
// analysis id. Absence is a soft null, not an error.
func (a *app) handleGetExistingAnalysis(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}

	record, err := a.db.GetLatestAnalysisByUserAndJob(c.Request.Context(), database.GetLatestAnalysisByUserAndJobParams{
		UserID: userID,
		JobID:  jobID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusOK, gin.H{"analysis": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analysis: " + err.Error()})
		return
	}

	resp := gin.H{"analysis": nil}
	if record.Analysis.Valid {
		resp["analysis"] = record.Analysis.String
	}
	c.JSON(http.StatusOK, resp)
}

// handleFindMyJobs derives keyword/category signals from the stored résumé
// and ranks the job catalog against them.
func (a *app) handleFindMyJobs(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	ctx := c.Request.Context()

	document, err := a.locator.Locate(ctx, userID)
	if errors.Is(err, errNoDocument) {
		c.JSON(http.StatusNotFound, gin.H{"error": "cv not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cv: " + err.Error()})
		return
	}

	cvText, err := a.extractor.extract(ctx, document.Extension, document.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract cv text: " + err.Error()})
		return
	}
	if strings.TrimSpace(cvText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cv is empty"})
		return
	}

	raw, err := a.reader.Generate(ctx, userID.String(), textPart(buildKeywordPrompt(cvText)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "keyword extraction failed: " + err.Error()})
		return
	}

	signals := parseSignals(raw)
	if len(signals.Keywords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no keywords found"})
		return
	}

	jobs, err := a.db.ListJobs(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords": signals.Keywords,
		"category": signals.Category,
		"results":  toJobResponses(rankJobs(jobs, signals.Keywords)),
	})
}

type jobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	JobType     string    `json:"job_type"`
}

func toJobResponses(jobs []database.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobResponse{
			ID:          job.ID,
			Title:       job.Title,
			Description: job.Description,
			JobType:     job.JobType,
		})
	}
	return out
}
