package routes

import (
	"petfectly_server/controllers"
	"petfectly_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for photo upload URLs. They stay public so the
// registration form can upload the pet photo before the account exists.
func RegisterS3Routes(r *mux.Router, s3 *services.S3Service) {
	controller := controllers.NewUploadController(s3)

	r.HandleFunc("/generate-presigned-url", controller.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/get-presigned-read-url", controller.GetPresignedReadURL).Methods("POST")
}
