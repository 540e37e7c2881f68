package app

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"campus_market/internal/domain"
)

/********** alias registries (single source of truth) **********/

var idAliases = []string{"id", "_id", "uuid", "key"}

var accommodationAliases = map[string][]string{
	"title":       {"title", "name", "propertyName", "headline"},
	"description": {"description", "details", "summary"},
	"type":        {"type", "accommodationType", "propertyType", "roomType", "category"},
	"currency":    {"currency", "price.currency"},
	"location":    {"location", "address", "location.address", "address.street", "area"},
	"city":        {"city", "location.city", "address.city", "town"},
	"owner":       {"ownerId", "owner._id", "owner.id", "landlordId", "landlord._id", "landlord.id", "owner", "landlord"},
}

var foodProviderAliases = map[string][]string{
	"name":        {"name", "businessName", "vendorName", "title"},
	"description": {"description", "about", "summary"},
	"cuisine":     {"cuisineType", "cuisine", "category", "type"},
	"service":     {"serviceType", "service", "deliveryType", "mode"},
	"location":    {"location", "address", "location.address", "area"},
	"city":        {"city", "location.city", "address.city"},
	"hours":       {"openingHours", "hours", "openHours", "workingHours"},
}

var bookingAliases = map[string][]string{
	"accommodation": {"accommodationId", "accommodation._id", "accommodation.id", "propertyId", "property._id", "accommodation", "property"},
	"title":         {"accommodationTitle", "accommodation.title", "accommodation.name", "property.title"},
	"user":          {"userId", "user._id", "user.id", "studentId", "user"},
	"status":        {"status", "bookingStatus", "state"},
	"code":          {"confirmationCode", "bookingCode", "reference", "code"},
	"notes":         {"notes", "specialRequests", "message"},
}

var orderAliases = map[string][]string{
	"provider":     {"providerId", "foodProviderId", "vendorId", "restaurantId", "provider._id", "provider.id", "provider"},
	"providerName": {"providerName", "provider.name", "vendor.name", "restaurant.name"},
	"user":         {"userId", "user._id", "user.id", "customerId", "user"},
	"status":       {"status", "orderStatus", "state"},
	"number":       {"orderNumber", "orderCode", "reference", "code"},
	"address":      {"deliveryAddress", "address", "deliveryLocation"},
	"notes":        {"notes", "instructions", "specialInstructions"},
}

var profileAliases = map[string][]string{
	"name":       {"name", "fullName", "displayName", "username"},
	"email":      {"email", "emailAddress"},
	"phone":      {"phone", "phoneNumber", "mobile"},
	"role":       {"role", "userType", "accountType"},
	"university": {"university", "school", "institution"},
	"avatar":     {"avatarUrl", "avatar", "profilePicture", "photo", "image"},
}

var notificationAliases = map[string][]string{
	"title":   {"title", "subject", "heading"},
	"message": {"message", "body", "content", "text"},
	"type":    {"type", "category", "kind"},
}

var reviewAliases = map[string][]string{
	"target":     {"targetId", "accommodationId", "foodProviderId", "providerId", "itemId"},
	"targetType": {"targetType", "itemType", "type"},
	"user":       {"userId", "user._id", "user.id", "reviewerId"},
	"author":     {"author", "userName", "user.name", "reviewer.name", "name"},
	"comment":    {"comment", "text", "review", "content", "body"},
}

var messageAliases = map[string][]string{
	"chat":      {"chatId", "conversationId", "roomId", "chat"},
	"sender":    {"senderId", "sender._id", "sender.id", "from", "sender"},
	"recipient": {"recipientId", "receiverId", "receiver._id", "receiver.id", "to", "recipient"},
	"text":      {"text", "message", "content", "body"},
}

/********** tiny helpers **********/

// lookupAny walks a dotted path through nested objects.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	return firstStr(m, aliases[key]...)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// lookupID accepts string or numeric identifiers.
func lookupID(m map[string]any, paths ...string) string {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func hasIdentity(m map[string]any) bool {
	return lookupID(m, idAliases...) != ""
}

// rowID returns the row's id, or a stable hash of its content when the
// backend omitted one.
func rowID(m map[string]any) string {
	if id := lookupID(m, idAliases...); id != "" {
		return id
	}
	b, _ := json.Marshal(m) // map keys are sorted
	sum := sha1.Sum(b)
	return "h-" + hex.EncodeToString(sum[:6])
}

func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func floatOr(m map[string]any, def float64, paths ...string) float64 {
	if f := getFloatFlexible(m, paths...); f != nil {
		return *f
	}
	return def
}

func boolOr(m map[string]any, def bool, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return def
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// firstTime parses RFC3339-ish strings or unix seconds/milliseconds.
func firstTime(m map[string]any, paths ...string) time.Time {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case string:
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
					return t.UTC()
				}
			}
		case float64:
			if v > 1e12 {
				return time.UnixMilli(int64(v)).UTC()
			}
			if v > 0 {
				return time.Unix(int64(v), 0).UTC()
			}
		}
	}
	return time.Time{}
}

// firstSliceStrings never returns nil.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t = strings.TrimSpace(t); t != "" {
						out = append(out, t)
					}
				case map[string]any:
					if s := firstStr(t, "url", "src", "name", "label"); s != "" {
						out = append(out, s)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			// "WiFi, Water" style
			out := []string{}
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return []string{}
}

/********** normalizers **********/

func normalizeList[T any](body any, mapFn func(map[string]any) T, names ...string) ([]T, bool) {
	rows, ok := unwrap(body, names...).asList()
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapFn(r))
	}
	return out, true
}

// normalizeOne requires an identity field; an object without one is an
// error payload or a bare acknowledgment.
func normalizeOne[T any](body any, mapFn func(map[string]any) T, names ...string) (T, bool) {
	var zero T
	obj, ok := unwrap(body, names...).asObject()
	if !ok || !hasIdentity(obj) {
		return zero, false
	}
	return mapFn(obj), true
}

/********** entity mappers **********/

func mapAccommodation(p map[string]any) domain.Accommodation {
	a := domain.Accommodation{
		ID:          rowID(p),
		Title:       firstNonEmptyAlias(p, accommodationAliases, "title"),
		Description: firstNonEmptyAlias(p, accommodationAliases, "description"),
		Type:        strings.ToLower(firstNonEmptyAlias(p, accommodationAliases, "type")),
		Price:       floatOr(p, 0, "price", "price.amount", "rent", "pricePerMonth", "amount", "cost"),
		Currency:    firstNonEmptyAlias(p, accommodationAliases, "currency"),
		Location:    firstNonEmptyAlias(p, accommodationAliases, "location"),
		City:        firstNonEmptyAlias(p, accommodationAliases, "city"),
		Amenities:   firstSliceStrings(p, "amenities", "features", "facilities"),
		Images:      firstSliceStrings(p, "images", "photos", "pictures"),
		Rating:      floatOr(p, 0, "rating", "averageRating", "rating.average", "stars"),
		Available:   boolOr(p, true, "available", "isAvailable", "availability"),
		OwnerID:     firstNonEmptyAlias(p, accommodationAliases, "owner"),
	}
	if a.Currency == "" {
		a.Currency = "NGN"
	}
	lat := getFloatFlexible(p, "coordinates.lat", "location.coordinates.lat", "location.lat", "lat", "latitude")
	lon := getFloatFlexible(p, "coordinates.lng", "coordinates.lon", "location.coordinates.lng", "location.lng", "lng", "lon", "longitude")
	if lat != nil && lon != nil {
		a.Coords = &domain.Coords{Lat: *lat, Lon: *lon}
	}
	return a
}

func mapFoodProvider(p map[string]any) domain.FoodProvider {
	f := domain.FoodProvider{
		ID:             rowID(p),
		Name:           firstNonEmptyAlias(p, foodProviderAliases, "name"),
		Description:    firstNonEmptyAlias(p, foodProviderAliases, "description"),
		CuisineType:    firstNonEmptyAlias(p, foodProviderAliases, "cuisine"),
		ServiceType:    strings.ToLower(firstNonEmptyAlias(p, foodProviderAliases, "service")),
		AveragePrice:   floatOr(p, 0, "averagePrice", "avgPrice", "priceRange.min", "minPrice", "price"),
		Location:       firstNonEmptyAlias(p, foodProviderAliases, "location"),
		City:           firstNonEmptyAlias(p, foodProviderAliases, "city"),
		DietaryOptions: firstSliceStrings(p, "dietaryOptions", "dietary", "dietaryTags", "tags"),
		Images:         firstSliceStrings(p, "images", "photos", "logo"),
		Rating:         floatOr(p, 0, "rating", "averageRating", "rating.average"),
		OpeningHours:   firstNonEmptyAlias(p, foodProviderAliases, "hours"),
		IsOpen:         boolOr(p, true, "isOpen", "open", "available"),
	}
	if f.CuisineType == "" {
		if c := firstSliceStrings(p, "cuisines", "cuisine"); len(c) > 0 {
			f.CuisineType = c[0]
		}
	}
	return f
}

func menuItemMapper(providerID string) func(map[string]any) domain.MenuItem {
	return func(p map[string]any) domain.MenuItem {
		it := domain.MenuItem{
			ID:          rowID(p),
			ProviderID:  firstStr(p, "providerId", "foodProviderId", "provider._id", "provider"),
			Name:        firstStr(p, "name", "title"),
			Description: firstStr(p, "description", "details"),
			Category:    firstStr(p, "category", "section", "type"),
			Price:       floatOr(p, 0, "price", "amount", "cost"),
			Dietary:     firstSliceStrings(p, "dietary", "dietaryOptions", "tags"),
			Available:   boolOr(p, true, "available", "isAvailable", "inStock"),
		}
		if it.ProviderID == "" {
			it.ProviderID = providerID
		}
		return it
	}
}

// bookingMapper fills Status with def when the payload carries none.
func bookingMapper(def string) func(map[string]any) domain.Booking {
	return func(p map[string]any) domain.Booking {
		b := domain.Booking{
			ID:               rowID(p),
			AccommodationID:  firstNonEmptyAlias(p, bookingAliases, "accommodation"),
			Accommodation:    firstNonEmptyAlias(p, bookingAliases, "title"),
			UserID:           firstNonEmptyAlias(p, bookingAliases, "user"),
			CheckIn:          firstTime(p, "checkIn", "checkInDate", "startDate", "moveInDate"),
			CheckOut:         firstTime(p, "checkOut", "checkOutDate", "endDate", "moveOutDate"),
			TotalPrice:       floatOr(p, 0, "totalPrice", "totalAmount", "amount", "price"),
			Status:           strings.ToLower(firstNonEmptyAlias(p, bookingAliases, "status")),
			ConfirmationCode: firstNonEmptyAlias(p, bookingAliases, "code"),
			Notes:            firstNonEmptyAlias(p, bookingAliases, "notes"),
			CreatedAt:        firstTime(p, "createdAt", "created_at", "bookingDate"),
			UpdatedAt:        firstTime(p, "updatedAt", "updated_at"),
		}
		if b.Status == "" {
			b.Status = def
		}
		return b
	}
}

func orderMapper(def string) func(map[string]any) domain.Order {
	return func(p map[string]any) domain.Order {
		o := domain.Order{
			ID:              rowID(p),
			ProviderID:      firstNonEmptyAlias(p, orderAliases, "provider"),
			ProviderName:    firstNonEmptyAlias(p, orderAliases, "providerName"),
			UserID:          firstNonEmptyAlias(p, orderAliases, "user"),
			Items:           mapOrderItems(lookupAny(p, "items")),
			Status:          strings.ToLower(firstNonEmptyAlias(p, orderAliases, "status")),
			OrderNumber:     firstNonEmptyAlias(p, orderAliases, "number"),
			DeliveryAddress: firstNonEmptyAlias(p, orderAliases, "address"),
			Notes:           firstNonEmptyAlias(p, orderAliases, "notes"),
			CreatedAt:       firstTime(p, "createdAt", "created_at", "orderDate"),
			UpdatedAt:       firstTime(p, "updatedAt", "updated_at"),
		}
		if t := getFloatFlexible(p, "totalAmount", "total", "totalPrice", "amount"); t != nil {
			o.TotalAmount = *t
		} else {
			o.TotalAmount = domain.OrderRequest{Items: o.Items}.Total()
		}
		if o.Status == "" {
			o.Status = def
		}
		return o
	}
}

func mapOrderItems(raw any) []domain.OrderItem {
	list, _ := raw.([]any)
	out := make([]domain.OrderItem, 0, len(list))
	for _, it := range list {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		q := int(floatOr(m, 1, "quantity", "qty", "count"))
		if q <= 0 {
			q = 1
		}
		out = append(out, domain.OrderItem{
			MenuItemID: lookupID(m, "menuItemId", "menuItem._id", "menuItem.id", "itemId", "_id", "id"),
			Name:       firstStr(m, "name", "menuItem.name", "title"),
			Quantity:   q,
			Price:      floatOr(m, 0, "price", "unitPrice", "menuItem.price"),
		})
	}
	return out
}

func mapProfile(p map[string]any) domain.Profile {
	name := firstNonEmptyAlias(p, profileAliases, "name")
	if name == "" {
		name = joinNonEmpty(" ", lookupStr(p, "firstName"), lookupStr(p, "lastName"))
	}
	return domain.Profile{
		ID:         rowID(p),
		Name:       name,
		Email:      firstNonEmptyAlias(p, profileAliases, "email"),
		Phone:      firstNonEmptyAlias(p, profileAliases, "phone"),
		Role:       strings.ToLower(firstNonEmptyAlias(p, profileAliases, "role")),
		University: firstNonEmptyAlias(p, profileAliases, "university"),
		AvatarURL:  firstNonEmptyAlias(p, profileAliases, "avatar"),
		CreatedAt:  firstTime(p, "createdAt", "created_at", "joinedAt"),
	}
}

func mapNotification(p map[string]any) domain.Notification {
	return domain.Notification{
		ID:        rowID(p),
		Title:     firstNonEmptyAlias(p, notificationAliases, "title"),
		Message:   firstNonEmptyAlias(p, notificationAliases, "message"),
		Type:      strings.ToLower(firstNonEmptyAlias(p, notificationAliases, "type")),
		Read:      boolOr(p, false, "read", "isRead", "seen"),
		CreatedAt: firstTime(p, "createdAt", "created_at", "timestamp", "date"),
	}
}

func reviewMapper(targetID string) func(map[string]any) domain.Review {
	return func(p map[string]any) domain.Review {
		r := domain.Review{
			ID:         rowID(p),
			TargetID:   firstNonEmptyAlias(p, reviewAliases, "target"),
			TargetType: strings.ToLower(firstNonEmptyAlias(p, reviewAliases, "targetType")),
			UserID:     firstNonEmptyAlias(p, reviewAliases, "user"),
			Author:     firstNonEmptyAlias(p, reviewAliases, "author"),
			Rating:     floatOr(p, 0, "rating", "stars", "score"),
			Comment:    firstNonEmptyAlias(p, reviewAliases, "comment"),
			CreatedAt:  firstTime(p, "createdAt", "created_at", "date"),
		}
		if r.TargetID == "" {
			r.TargetID = targetID
		}
		return r
	}
}

func messageMapper(chatID string) func(map[string]any) domain.ChatMessage {
	return func(p map[string]any) domain.ChatMessage {
		m := domain.ChatMessage{
			ID:          rowID(p),
			ChatID:      firstNonEmptyAlias(p, messageAliases, "chat"),
			SenderID:    firstNonEmptyAlias(p, messageAliases, "sender"),
			RecipientID: firstNonEmptyAlias(p, messageAliases, "recipient"),
			Text:        firstNonEmptyAlias(p, messageAliases, "text"),
			Read:        boolOr(p, false, "read", "isRead", "seen"),
			SentAt:      firstTime(p, "sentAt", "createdAt", "timestamp", "time"),
		}
		if m.ChatID == "" {
			m.ChatID = chatID
		}
		return m
	}
}
