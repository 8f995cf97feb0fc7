package influencer

// Raw platform payloads use differing field names for the same concepts.
// These parsers map them onto the unified Profile.

// InstagramData is the subset of an Instagram profile payload the
// evaluator consumes.
type InstagramData struct {
	Username       string   `json:"username"`
	FollowersCount int      `json:"followers_count"`
	FollowingCount int      `json:"following_count"`
	MediaCount     int      `json:"media_count"`
	AvgLikes       float64  `json:"avg_likes"`
	AvgComments    float64  `json:"avg_comments"`
	Biography      string   `json:"biography"`
	RecentCaptions []string `json:"recent_captions"`
	Hashtags       []string `json:"hashtags"`
}

// ParseInstagram maps an Instagram payload to a Profile.
func ParseInstagram(data InstagramData) *Profile {
	return &Profile{
		Platform:       PlatformInstagram,
		Username:       data.Username,
		Followers:      data.FollowersCount,
		Following:      data.FollowingCount,
		Posts:          data.MediaCount,
		AvgLikes:       data.AvgLikes,
		AvgComments:    data.AvgComments,
		Bio:            data.Biography,
		RecentCaptions: data.RecentCaptions,
		Hashtags:       data.Hashtags,
	}
}

// TikTokData is the subset of a TikTok profile payload the evaluator
// consumes.
type TikTokData struct {
	Username       string   `json:"username"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
	VideoCount     int      `json:"video_count"`
	AvgLikes       float64  `json:"avg_likes"`
	AvgComments    float64  `json:"avg_comments"`
	AvgViews       float64  `json:"avg_views"`
	Signature      string   `json:"signature"`
	RecentCaptions []string `json:"recent_captions"`
	Hashtags       []string `json:"hashtags"`
}

// ParseTikTok maps a TikTok payload to a Profile.
func ParseTikTok(data TikTokData) *Profile {
	return &Profile{
		Platform:       PlatformTikTok,
		Username:       data.Username,
		Followers:      data.FollowerCount,
		Following:      data.FollowingCount,
		Posts:          data.VideoCount,
		AvgLikes:       data.AvgLikes,
		AvgComments:    data.AvgComments,
		AvgViews:       data.AvgViews,
		Bio:            data.Signature,
		RecentCaptions: data.RecentCaptions,
		Hashtags:       data.Hashtags,
	}
}
