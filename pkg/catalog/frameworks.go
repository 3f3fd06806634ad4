package catalog

// Built-in frameworks.
var (
	Laravel = &Framework{
		ID:   "laravel",
		Name: "Laravel",
		categories: []Category{
			{
				ID:   "database",
				Name: "Database",
				Dependencies: []Dependency{
					{ID: "laravel/sanctum", Name: "Laravel Sanctum", Description: "API token authentication"},
					{ID: "laravel/passport", Name: "Laravel Passport", Description: "OAuth2 server implementation"},
					{ID: "spatie/laravel-permission", Name: "Spatie Permissions", Description: "Role and permission management"},
				},
			},
			{
				ID:   "ui",
				Name: "UI",
				Dependencies: []Dependency{
					{ID: "livewire/livewire", Name: "Livewire", Description: "Full-stack framework for Laravel"},
					{ID: "inertiajs/inertia-laravel", Name: "Inertia.js", Description: "Modern monolith SPA framework"},
					{ID: "laravel/breeze", Name: "Laravel Breeze", Description: "Minimal authentication scaffolding"},
					{ID: "laravel/jetstream", Name: "Laravel Jetstream", Description: "Application scaffolding with teams"},
				},
			},
			{
				ID:   "testing",
				Name: "Testing",
				Dependencies: []Dependency{
					{ID: "pestphp/pest", Name: "Pest", Description: "Elegant PHP testing framework"},
					{ID: "mockery/mockery", Name: "Mockery", Description: "Mock object framework for testing"},
					{ID: "nunomaduro/larastan", Name: "Larastan", Description: "PHPStan extension for Laravel"},
				},
			},
		},
	}

	Symfony = &Framework{
		ID:   "symfony",
		Name: "Symfony",
		categories: []Category{
			{
				ID:   "database",
				Name: "Database",
				Dependencies: []Dependency{
					{ID: "doctrine/doctrine-bundle", Name: "Doctrine ORM", Description: "Object-relational mapper"},
					{ID: "doctrine/mongodb-odm-bundle", Name: "MongoDB ODM", Description: "MongoDB integration"},
					{ID: "symfony/orm-pack", Name: "ORM Pack", Description: "Doctrine ORM pack"},
				},
			},
			{
				ID:   "ui",
				Name: "UI",
				Dependencies: []Dependency{
					{ID: "symfony/webpack-encore-bundle", Name: "Webpack Encore", Description: "Asset management"},
					{ID: "symfony/ux-turbo", Name: "Turbo", Description: "Hotwire's Turbo integration"},
					{ID: "symfony/twig-bundle", Name: "Twig Bundle", Description: "Twig integration"},
				},
			},
			{
				ID:   "api",
				Name: "API",
				Dependencies: []Dependency{
					{ID: "api-platform/core", Name: "API Platform", Description: "REST and GraphQL framework"},
					{ID: "symfony/serializer", Name: "Serializer", Description: "Serialize/deserialize data"},
					{ID: "lexik/jwt-authentication-bundle", Name: "JWT Authentication", Description: "JWT auth for Symfony"},
				},
			},
		},
	}

	CodeIgniter = &Framework{
		ID:   "codeigniter",
		Name: "CodeIgniter",
		categories: []Category{
			{
				ID:   "database",
				Name: "Database",
				Dependencies: []Dependency{
					{ID: "myth/auth", Name: "Myth Auth", Description: "Authentication & Authorization"},
					{ID: "agungsugiarto/codeigniter4-cors", Name: "CORS", Description: "CORS middleware"},
					{ID: "tatter/alerts", Name: "Alerts", Description: "Flash messages"},
				},
			},
			{
				ID:   "ui",
				Name: "UI",
				Dependencies: []Dependency{
					{ID: "codeigniter4/shield", Name: "Shield", Description: "Authentication for CodeIgniter 4"},
					{ID: "benedmunds/codeigniter-ion-auth", Name: "Ion Auth", Description: "Simple auth system"},
					{ID: "lonnieezell/codeigniter-forensics", Name: "Forensics", Description: "Profiling tools"},
				},
			},
		},
	}

	Slim = &Framework{
		ID:   "slim",
		Name: "Slim",
		categories: []Category{
			{
				ID:   "core",
				Name: "Core",
				Dependencies: []Dependency{
					{ID: "slim/twig-view", Name: "Twig View", Description: "Twig integration for Slim"},
					{ID: "slim/php-view", Name: "PHP View", Description: "PHP renderer for Slim"},
					{ID: "slim/csrf", Name: "CSRF Protection", Description: "CSRF guard middleware"},
				},
			},
		},
	}

	Lumen = &Framework{
		ID:   "lumen",
		Name: "Lumen",
		categories: []Category{
			{
				ID:   "core",
				Name: "Core",
				Dependencies: []Dependency{
					{ID: "flipbox/lumen-generator", Name: "Lumen Generator", Description: "Artisan commands for Lumen"},
					{ID: "vlucas/phpdotenv", Name: "PHP dotenv", Description: "Loads environment variables"},
					{ID: "tymon/jwt-auth", Name: "JWT Auth", Description: "JSON Web Token Authentication"},
				},
			},
		},
	}
)

// all lists frameworks in the order the selectors show them.
var all = []*Framework{Laravel, Symfony, CodeIgniter, Slim, Lumen}
