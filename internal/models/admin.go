package models

// Shapes agregadas para el dashboard de admin (resultado de pipelines $group).

type UserCounts struct {
	Total  int64 `json:"totalUsers"`
	Active int64 `json:"activeUsers"`
	Admins int64 `json:"adminUsers"`
}

type ContentCounts struct {
	Total    int64 `json:"totalContent"`
	Movies   int64 `json:"totalMovies"`
	Series   int64 `json:"totalSeries"`
	Featured int64 `json:"featuredContent"`
	Trending int64 `json:"trendingContent"`
}

type EngagementTotals struct {
	TotalViews int64   `json:"totalViews" bson:"totalViews"`
	TotalLikes int64   `json:"totalLikes" bson:"totalLikes"`
	AvgRating  float64 `json:"avgRating" bson:"avgRating"`
}

// BucketCount es un bucket genérico de $group (género, plan, etc).
type BucketCount struct {
	ID    string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// ProfileUpdate: campos editables del perfil propio.
type ProfileUpdate struct {
	Name        *string      `json:"name"`
	Avatar      *string      `json:"avatar"`
	Bio         *string      `json:"bio"`
	Preferences *Preferences `json:"preferences"`
}

// AdminUserUpdate: campos que un admin puede tocar de cualquier usuario.
type AdminUserUpdate struct {
	Name     *string `json:"name"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"isActive"`
	Plan     *string `json:"plan" validate:"omitempty,oneof=free basic standard premium"`
}
