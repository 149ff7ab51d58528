package services

import (
	"github.com/ligaregional/league-system/models"
	"github.com/ligaregional/league-system/storage"
)

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func populateClubCrestURL(club *models.Club, uploader storage.FileUploader) {
	if club != nil && club.CrestKey != nil && *club.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*club.CrestKey)
		if url != "" {
			club.CrestURL = &url
		}
	}
}

func populateClubListCrestURLs(clubs []*models.Club, uploader storage.FileUploader) {
	for _, club := range clubs {
		populateClubCrestURL(club, uploader)
	}
}

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player != nil && player.PhotoKey != nil && *player.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*player.PhotoKey)
		if url != "" {
			player.PhotoURL = &url
		}
	}
}
