package cricket

import "github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"

const photoBase = "https://img1.hscicdn.com/image/upload/f_auto,t_ds_square_w_320/lsci/db/PICTURES/CMS"

// FeaturedPlayers is the hand-curated list always shown ahead of the
// provider page when no search term is given. Order is fixed.
var FeaturedPlayers = []cricapi.Player{
	{ID: "3710787a-9a99-49dd-9e0c-843fdf5359b3", Name: "Virat Kohli", Country: "India", Role: "Batter", Photo: photoBase + "/316600/316605.png"},
	{ID: "7343468c-db53-432d-9308-592b0c399ce8", Name: "Rohit Sharma", Country: "India", Role: "Batter", Photo: photoBase + "/316500/316526.png"},
	{ID: "e102660d-773a-4464-8898-3f8d752f901a", Name: "Jasprit Bumrah", Country: "India", Role: "Bowler", Photo: photoBase + "/316500/316584.png"},
	{ID: "0d3a9d9e-9d9e-4e4e-9d9e-9d9e9d9e9d9e", Name: "Hardik Pandya", Country: "India", Role: "All-rounder", Photo: photoBase + "/316500/316529.png"},
	{ID: "1d3a9d9e-9d9e-4e4e-9d9e-9d9e9d9e9d9e", Name: "Ravindra Jadeja", Country: "India", Role: "All-rounder", Photo: photoBase + "/316500/316521.png"},
	{ID: "2d3a9d9e-9d9e-4e4e-9d9e-9d9e9d9e9d9e", Name: "KL Rahul", Country: "India", Role: "Batter", Photo: photoBase + "/316500/316531.png"},
	{ID: "3d3a9d9e-9d9e-4e4e-9d9e-9d9e9d9e9d9e", Name: "Shubman Gill", Country: "India", Role: "Batter", Photo: photoBase + "/316600/316654.png"},
	{ID: "4d3a9d9e-9d9e-4e4e-9d9e-9d9e9d9e9d9e", Name: "MS Dhoni", Country: "India", Role: "WK-Batter", Photo: photoBase + "/319900/319932.png"},
}
