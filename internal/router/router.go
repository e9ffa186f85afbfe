package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"

	mem "github.com/asif7480/FurShield-backend/internal/adapters/storage/memory"
	mdb "github.com/asif7480/FurShield-backend/internal/adapters/storage/mongodb"
	"github.com/asif7480/FurShield-backend/internal/domain/appointments"
	"github.com/asif7480/FurShield-backend/internal/domain/articles"
	"github.com/asif7480/FurShield-backend/internal/domain/carts"
	"github.com/asif7480/FurShield-backend/internal/domain/healthrecords"
	"github.com/asif7480/FurShield-backend/internal/domain/notifications"
	"github.com/asif7480/FurShield-backend/internal/domain/orders"
	"github.com/asif7480/FurShield-backend/internal/domain/pets"
	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/domain/shelterpets"
	"github.com/asif7480/FurShield-backend/internal/domain/users"
	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/assets"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

type Options struct {
	Issuer   auth.TokenIssuer
	Verifier auth.TokenVerifier

	// Opcional: si viene, usa Mongo. Si no, repos in-memory (dev/tests).
	DB *mongo.Database

	// Opcional: nil deja las URLs de imagen vacías.
	Uploader assets.Uploader

	AllowedOrigins []string
	SecureCookie   bool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, http.StatusOK, "FurShield API is running", nil)
	})

	var (
		userRepo         users.Repository
		petRepo          pets.Repository
		shelterPetRepo   shelterpets.Repository
		appointmentRepo  appointments.Repository
		healthRecordRepo healthrecords.Repository
		productRepo      products.Repository
		cartRepo         carts.Repository
		orderRepo        orders.Repository
		articleRepo      articles.Repository
		notificationRepo notifications.Repository
	)

	if opts.DB != nil {
		userRepo = mdb.NewUserRepo(opts.DB)
		petRepo = mdb.NewPetRepo(opts.DB)
		shelterPetRepo = mdb.NewShelterPetRepo(opts.DB)
		appointmentRepo = mdb.NewAppointmentRepo(opts.DB)
		healthRecordRepo = mdb.NewHealthRecordRepo(opts.DB)
		productRepo = mdb.NewProductRepo(opts.DB)
		cartRepo = mdb.NewCartRepo(opts.DB)
		orderRepo = mdb.NewOrderRepo(opts.DB)
		articleRepo = mdb.NewArticleRepo(opts.DB)
		notificationRepo = mdb.NewNotificationRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		shelterPetRepo = mem.NewShelterPetRepo()
		appointmentRepo = mem.NewAppointmentRepo()
		healthRecordRepo = mem.NewHealthRecordRepo()
		productRepo = mem.NewProductRepo()
		cartRepo = mem.NewCartRepo()
		orderRepo = mem.NewOrderRepo()
		articleRepo = mem.NewArticleRepo()
		notificationRepo = mem.NewNotificationRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	shelterPetsSvc := shelterpets.NewService(shelterPetRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo, petsSvc)
	healthRecordsSvc := healthrecords.NewService(healthRecordRepo, petsSvc, appointmentsSvc)
	productsSvc := products.NewService(productRepo)
	cartsSvc := carts.NewService(cartRepo)
	ordersSvc := orders.NewService(orderRepo, cartsSvc, productsSvc)
	articlesSvc := articles.NewService(articleRepo)
	notificationsSvc := notifications.NewService(notificationRepo)
	ratingsSvc := ratings.NewService(userRepo, productRepo)

	// El rol nunca viaja en el token: cada request resuelve la identidad
	// fresca contra el store (usersSvc implementa auth.IdentityStore).
	authn := middleware.Authenticate(opts.Verifier, usersSvc)

	r.Route("/api/v1", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc, users.Options{
			Issuer:       opts.Issuer,
			Uploader:     opts.Uploader,
			Authn:        authn,
			SecureCookie: opts.SecureCookie,
		})

		pets.RegisterRoutes(api, petsSvc, pets.Options{
			Uploader: opts.Uploader,
			Owners:   usersSvc,
			Authn:    authn,
		})

		appointments.RegisterRoutes(api, appointmentsSvc, appointments.Options{
			Users: usersSvc,
			Pets:  petsSvc,
			Authn: authn,
		})

		healthrecords.RegisterRoutes(api, healthRecordsSvc, healthrecords.Options{
			Pets:  petsSvc,
			Authn: authn,
		})

		shelterpets.RegisterRoutes(api, shelterPetsSvc, shelterpets.Options{
			Uploader: opts.Uploader,
			Authn:    authn,
		})

		products.RegisterRoutes(api, productsSvc, products.Options{
			Uploader: opts.Uploader,
			Authn:    authn,
		})

		carts.RegisterRoutes(api, cartsSvc, carts.Options{
			Products: productsSvc,
			Authn:    authn,
		})

		orders.RegisterRoutes(api, ordersSvc, orders.Options{
			Authn: authn,
		})

		articles.RegisterRoutes(api, articlesSvc, articles.Options{
			Authn: authn,
		})

		notifications.RegisterRoutes(api, notificationsSvc, notifications.Options{
			Authn: authn,
		})

		ratings.RegisterRoutes(api, ratingsSvc, authn)

		api.Get("/totalCounts", users.TotalCountsHandler(usersSvc, productsSvc, petsSvc))
	})

	return r
}
