package store

// SQL query constants organized by entity.
// All SQL lives here — PostgresStore methods reference these constants.

// User queries.
const (
	queryInsertUser = `
		INSERT INTO users (
			id, email, username, password_hash, role,
			profile_photo_url, city, state, country,
			created_at, updated_at
		) VALUES (
			@id, @email, @username, @password_hash, @role,
			@profile_photo_url, @city, @state, @country,
			now(), now()
		)
		RETURNING created_at, updated_at`

	queryGetUserByID = `
		SELECT id, email, username, password_hash, role,
			COALESCE(profile_photo_url, ''), COALESCE(city, ''),
			COALESCE(state, ''), COALESCE(country, ''),
			created_at, updated_at
		FROM users
		WHERE id = $1`

	queryGetUserByEmail = `
		SELECT id, email, username, password_hash, role,
			COALESCE(profile_photo_url, ''), COALESCE(city, ''),
			COALESCE(state, ''), COALESCE(country, ''),
			created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)`

	queryUpdateUser = `
		UPDATE users SET
			email = @email,
			username = @username,
			password_hash = @password_hash,
			role = @role,
			profile_photo_url = @profile_photo_url,
			city = @city,
			state = @state,
			country = @country,
			updated_at = now()
		WHERE id = @id`

	queryDeleteUser = `DELETE FROM users WHERE id = $1`

	queryCountUsers = `SELECT COUNT(*) FROM users`
)

// Listing queries.
const (
	listingColumns = `id, user_id, condition, brand, model, description,
		price_amount, currency, year, mileage_km, body_type, fuel_type,
		engine_capacity_cc, power_kw, power_hp, fixed_price, exchange,
		headliner_image_url, COALESCE(image_urls, '{}'), ad_number, created_at`

	queryInsertListing = `
		INSERT INTO listings (
			user_id, condition, brand, model, description,
			price_amount, currency, year, mileage_km, body_type, fuel_type,
			engine_capacity_cc, power_kw, power_hp, fixed_price, exchange,
			headliner_image_url, image_urls, ad_number, created_at
		) VALUES (
			@user_id, @condition, @brand, @model, @description,
			@price_amount, @currency, @year, @mileage_km, @body_type, @fuel_type,
			@engine_capacity_cc, @power_kw, @power_hp, @fixed_price, @exchange,
			@headliner_image_url, @image_urls, @ad_number, @created_at
		)
		RETURNING id`

	queryGetListing = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1`

	queryListListings = `
		SELECT ` + listingColumns + `
		FROM listings
		ORDER BY created_at DESC, id DESC`

	queryListListingsByUser = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	queryUpdateListing = `
		UPDATE listings SET
			condition = @condition,
			brand = @brand,
			model = @model,
			description = @description,
			price_amount = @price_amount,
			currency = @currency,
			year = @year,
			mileage_km = @mileage_km,
			body_type = @body_type,
			fuel_type = @fuel_type,
			engine_capacity_cc = @engine_capacity_cc,
			power_kw = @power_kw,
			power_hp = @power_hp,
			fixed_price = @fixed_price,
			exchange = @exchange,
			headliner_image_url = @headliner_image_url,
			image_urls = @image_urls,
			ad_number = @ad_number
		WHERE id = @id`

	queryDeleteListing = `DELETE FROM listings WHERE id = $1`

	queryCountListings = `SELECT COUNT(*) FROM listings`
)
