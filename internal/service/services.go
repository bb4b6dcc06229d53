// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

// Services groups the services exposed to the control API and the CLI.
type Services struct {
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(sync SyncService, appInfo AppInfoService) *Services {
	return &Services{
		SyncService:    sync,
		AppInfoService: appInfo,
	}
}
