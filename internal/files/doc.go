// Package files locates and checks the store spreadsheet on disk.
//
// Discovery lists the xlsx workbooks in a directory, skipping the lock files
// Excel leaves next to open workbooks. Manager resolves the dataset path from
// configuration and prepares the directories the server writes to.
//
// Example usage:
//
//	manager := files.NewManager(cfg.Paths, logger)
//	path := manager.ResolveDataset(cfg.DatasetPath(), cfg.Dataset.Discover)
package files
